package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/daylog/internal/models"
)

var ErrInvalidDate = errors.New("invalid date")

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// ParseEntryDate validates a YYYY-MM-DD key and returns it in canonical form.
func ParseEntryDate(raw string, location *time.Location) (time.Time, string, error) {
	if location == nil {
		location = time.UTC
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, "", ErrInvalidDate
	}
	parsed, err := time.ParseInLocation(models.DateLayout, trimmed, location)
	if err != nil {
		return time.Time{}, "", ErrInvalidDate
	}
	return parsed, parsed.Format(models.DateLayout), nil
}

func TodayKey(now time.Time, location *time.Location) string {
	return DateAtLocation(now, location).Format(models.DateLayout)
}

// IsFutureDate reports whether a canonical date key lies strictly after today.
func IsFutureDate(date string, now time.Time, location *time.Location) bool {
	return date > TodayKey(now, location)
}
