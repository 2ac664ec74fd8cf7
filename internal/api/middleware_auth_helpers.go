package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/daylog/internal/services"
)

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*services.Identity, error) {
	rawToken := strings.TrimSpace(c.Cookies(authCookieName))
	if rawToken == "" {
		return nil, errors.New("missing auth cookie")
	}
	tokenValue, err := handler.cookieCodec.open(authCookiePurpose, rawToken)
	if err != nil {
		return nil, errors.New("invalid token")
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(string(tokenValue), claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, errors.New("token expired")
	}
	if claims.Subject == "" {
		return nil, errors.New("invalid token")
	}

	return &services.Identity{
		ID:       claims.Subject,
		Name:     claims.Name,
		Username: claims.Username,
	}, nil
}

func (handler *Handler) optionalAuthenticatedUser(c *fiber.Ctx) *services.Identity {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return nil
	}
	return user
}
