package api

import (
	"html/template"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/daylog/internal/services"
)

type Handler struct {
	journal      *services.JournalService
	auth         services.Authenticator
	secretKey    []byte
	cookieCodec  *secureCookieCodec
	location     *time.Location
	cookieSecure bool
	templates    map[string]*template.Template
}

// HandlerConfig carries what NewHandler needs from the caller.
type HandlerConfig struct {
	Journal      *services.JournalService
	Auth         services.Authenticator
	SecretKey    string
	CookieSecure bool
}

type FlashPayload struct {
	AuthError      string `json:"auth_error,omitempty"`
	LoginUsername  string `json:"login_username,omitempty"`
	JournalError   string `json:"journal_error,omitempty"`
	JournalSuccess string `json:"journal_success,omitempty"`
}

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
)

type authClaims struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}
