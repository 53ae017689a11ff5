package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestHandle_OpensOnceAndCaches(t *testing.T) {
	calls := 0
	db := &gorm.DB{}
	h := &Handle{dsn: "postgres://localhost/events", open: func(ctx context.Context, dsn string) (*gorm.DB, error) {
		calls++
		return db, nil
	}}

	first, err := h.DB(context.Background())
	require.NoError(t, err)
	second, err := h.DB(context.Background())
	require.NoError(t, err)

	assert.Same(t, db, first)
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestHandle_FailureIsNotCached(t *testing.T) {
	calls := 0
	h := &Handle{dsn: "postgres://localhost/events", open: func(ctx context.Context, dsn string) (*gorm.DB, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("connection refused")
		}
		return &gorm.DB{}, nil
	}}

	_, err := h.DB(context.Background())
	require.Error(t, err)

	db, err := h.DB(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, db)
	assert.Equal(t, 2, calls)
}

func TestHandle_MissingDSN(t *testing.T) {
	h := NewHandle("")

	_, err := h.DB(context.Background())

	assert.ErrorIs(t, err, ErrMissingDSN)
}

func TestStatic(t *testing.T) {
	db := &gorm.DB{}

	got, err := Static(db).DB(context.Background())

	require.NoError(t, err)
	assert.Same(t, db, got)
}
