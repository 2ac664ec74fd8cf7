package services

import (
	"time"

	"github.com/terraincognita07/daylog/internal/models"
)

type CalendarDayState struct {
	Date       time.Time `json:"-"`
	DateString string    `json:"date"`
	Day        int       `json:"day"`
	InMonth    bool      `json:"inMonth"`
	IsToday    bool      `json:"isToday"`
	IsFuture   bool      `json:"isFuture"`
	HasEntry   bool      `json:"hasEntry"`
}

// BuildCalendarDayStates lays out the Sunday-first grid of weeks covering
// monthStart's month.
func BuildCalendarDayStates(monthStart time.Time, entries []models.Entry, now time.Time, location *time.Location) []CalendarDayState {
	monthEnd := monthStart.AddDate(0, 1, -1)
	gridStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))
	gridEnd := monthEnd.AddDate(0, 0, 6-int(monthEnd.Weekday()))

	hasEntry := make(map[string]bool, len(entries))
	for _, entry := range entries {
		hasEntry[entry.Date] = true
	}

	todayKey := TodayKey(now, location)

	days := make([]CalendarDayState, 0, 42)
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		key := day.Format(models.DateLayout)
		days = append(days, CalendarDayState{
			Date:       day,
			DateString: key,
			Day:        day.Day(),
			InMonth:    day.Month() == monthStart.Month(),
			IsToday:    key == todayKey,
			IsFuture:   key > todayKey,
			HasEntry:   hasEntry[key],
		})
	}
	return days
}

func MonthStart(value time.Time, location *time.Location) time.Time {
	day := DateAtLocation(value, location)
	return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
}
