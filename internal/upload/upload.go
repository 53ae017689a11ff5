package upload

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Eursukkul/event-service/internal/models"
	"github.com/Eursukkul/event-service/internal/repository"
	"gorm.io/gorm"
)

const DefaultMaxBytes = 4 << 20

var (
	ErrNoFiles  = errors.New("no files to upload")
	ErrNotImage = errors.New("only image files are accepted")
	ErrTooLarge = errors.New("file exceeds the upload size limit")

	ErrAssetNotFound = errors.New("asset not found")
)

// File is a pending upload held in memory.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type Uploaded struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

type Uploader interface {
	Upload(ctx context.Context, files []File) ([]Uploaded, error)
}

// Store keeps image blobs in the asset table and serves them back by id.
type Store struct {
	assets   repository.AssetRepository
	baseURL  string
	maxBytes int64
}

func NewStore(assets repository.AssetRepository, baseURL string, maxBytes int64) *Store {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Store{
		assets:   assets,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
	}
}

// Upload checks every file before writing any of them.
func (s *Store) Upload(ctx context.Context, files []File) ([]Uploaded, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	assets := make([]*models.Asset, 0, len(files))
	for _, f := range files {
		if int64(len(f.Data)) > s.maxBytes {
			return nil, fmt.Errorf("%s: %w", f.Name, ErrTooLarge)
		}
		contentType := http.DetectContentType(f.Data)
		if !strings.HasPrefix(contentType, "image/") {
			return nil, fmt.Errorf("%s (%s): %w", f.Name, contentType, ErrNotImage)
		}
		assets = append(assets, &models.Asset{
			Name:        f.Name,
			ContentType: contentType,
			Size:        int64(len(f.Data)),
			Data:        f.Data,
		})
	}

	out := make([]Uploaded, 0, len(assets))
	for _, a := range assets {
		if err := s.assets.Create(ctx, a); err != nil {
			return nil, fmt.Errorf("store asset %s: %w", a.Name, err)
		}
		out = append(out, Uploaded{ID: a.ID, URL: s.URL(a.ID), Name: a.Name, Size: a.Size})
	}
	return out, nil
}

func (s *Store) Open(ctx context.Context, id string) (*models.Asset, error) {
	asset, err := s.assets.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, fmt.Errorf("find asset %s: %w", id, err)
	}
	return asset, nil
}

// URL is the public address of a stored asset.
func (s *Store) URL(id string) string {
	return s.baseURL + "/api/v1/assets/" + id
}
