package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Freeeeeet/live_lessons/internal/service"
)

const (
	contextTokenKey  = "userToken"
	contextUserIDKey = "userID"
)

// Claims токен выдаёт внешний провайдер авторизации (HS256), subject - id пользователя
type Claims struct {
	jwt.StandardClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// authMiddleware проверяет Bearer токен и кладёт id пользователя в контекст.
// Без секрета любой запрос отклоняется.
func authMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(secret) == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication is not configured")
			}

			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed jwt")
			}

			claims := new(Claims)
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired jwt").SetInternal(err)
			}
			// Токен без exp считаем недействительным
			if claims.ExpiresAt == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired jwt")
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid jwt subject").SetInternal(err)
			}

			c.Set(contextTokenKey, token)
			c.Set(contextUserIDKey, userID)
			return next(c)
		}
	}
}

// adminMiddleware пропускает только пользователей с ролью admin в профиле
func adminMiddleware(users UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := contextUserID(c)
			if err != nil {
				return err
			}

			isAdmin, err := users.IsAdmin(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, service.ErrUserNotFound) {
					return errForbidden
				}
				return fmt.Errorf("check admin role: %w", err)
			}
			if !isAdmin {
				return errForbidden
			}
			return next(c)
		}
	}
}

func contextUserID(c echo.Context) (uuid.UUID, error) {
	if id, ok := c.Get(contextUserIDKey).(uuid.UUID); ok {
		return id, nil
	}
	return uuid.Nil, errUnauthorized
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}

func paramUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errInvalidID
	}
	return id, nil
}
