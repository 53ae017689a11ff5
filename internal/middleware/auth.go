package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const userIDKey = "userId"

var ErrNoUser = errors.New("no authenticated user")

type ownerClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Auth verifies an HS256 bearer token and stores the caller's id on the
// context. The id comes from the userId claim, falling back to sub.
func Auth(secret string) echo.MiddlewareFunc {
	key := []byte(secret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			userID, err := parseOwner(raw, key)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// UserID returns the id set by Auth.
func UserID(c echo.Context) (string, error) {
	id, _ := c.Get(userIDKey).(string)
	if id == "" {
		return "", ErrNoUser
	}
	return id, nil
}

// SetUserID is used by tests and trusted internal callers.
func SetUserID(c echo.Context, id string) {
	c.Set(userIDKey, id)
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func parseOwner(raw string, key []byte) (string, error) {
	parsed, err := jwt.ParseWithClaims(raw, &ownerClaims{}, func(token *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithLeeway(30*time.Second))
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*ownerClaims)
	if !ok || !parsed.Valid {
		return "", errors.New("invalid token claims")
	}

	if claims.UserID != "" {
		return claims.UserID, nil
	}
	if claims.Subject != "" {
		return claims.Subject, nil
	}
	return "", errors.New("token has neither userId nor sub")
}
