package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/HarshitaThota/Flow-State/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var (
	errMissingToken = errors.New("missing auth token")
	errInvalidToken = errors.New("invalid token")
)

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

// requestToken prefers an Authorization bearer token over the auth cookie.
func requestToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(header) > len("Bearer ") && strings.EqualFold(header[:len("Bearer ")], "Bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return strings.TrimSpace(c.Cookies(authCookieName))
}

func (handler *Handler) parseToken(tokenValue string) (*authClaims, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenValue, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(handler.clock))
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}
	return claims, nil
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, error) {
	tokenValue := requestToken(c)
	if tokenValue == "" {
		return nil, errMissingToken
	}

	claims, err := handler.parseToken(tokenValue)
	if err != nil {
		return nil, err
	}

	user, err := handler.authService.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
