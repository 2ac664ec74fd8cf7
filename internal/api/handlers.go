package api

import (
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/terraincognita07/daylog/internal/services"
	"github.com/terraincognita07/daylog/internal/templates"
)

func NewHandler(config HandlerConfig) (*Handler, error) {
	if config.Journal == nil {
		return nil, errors.New("journal service is required")
	}
	if config.Auth == nil {
		return nil, errors.New("authenticator is required")
	}
	if strings.TrimSpace(config.SecretKey) == "" {
		return nil, errors.New("secret key is required")
	}

	codec, err := newSecureCookieCodec([]byte(config.SecretKey))
	if err != nil {
		return nil, err
	}

	location := config.Journal.Location()

	funcMap := template.FuncMap{
		"formatDate": func(value time.Time, layout string) string {
			if value.IsZero() {
				return ""
			}
			return value.Format(layout)
		},
		"formatTimestamp": func(value time.Time) string {
			if value.IsZero() {
				return ""
			}
			return value.In(location).Format("Jan 2, 2006 15:04")
		},
		"calendarDayClass": calendarDayClass,
	}

	parsed := make(map[string]*template.Template)
	pages := []string{
		"login",
		"journal",
		"not_found",
	}
	for _, page := range pages {
		tmpl, err := template.New("base").Funcs(funcMap).ParseFS(templates.FS, "base.html", page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		parsed[page] = tmpl
	}

	return &Handler{
		journal:      config.Journal,
		auth:         config.Auth,
		secretKey:    []byte(config.SecretKey),
		cookieCodec:  codec,
		location:     location,
		cookieSecure: config.CookieSecure,
		templates:    parsed,
	}, nil
}

func calendarDayClass(day services.CalendarDayState, selectedDate string) string {
	classes := make([]string, 0, 5)
	if !day.InMonth {
		classes = append(classes, "out")
	}
	if day.IsToday {
		classes = append(classes, "today")
	}
	if day.DateString == selectedDate {
		classes = append(classes, "selected")
	}
	if day.HasEntry {
		classes = append(classes, "has-entry")
	}
	if day.IsFuture {
		classes = append(classes, "future")
	}
	return strings.Join(classes, " ")
}
