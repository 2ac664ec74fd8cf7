package services

import (
	"sort"
	"strings"

	"github.com/terraincognita07/daylog/internal/models"
)

const DefaultRecentEntries = 5

// SearchByTitle matches query as a case-insensitive substring of entry
// titles. Body text is not searched. A blank query yields no results.
func SearchByTitle(entries []models.Entry, query string) []models.Entry {
	needle := strings.ToLower(query)
	if strings.TrimSpace(needle) == "" {
		return []models.Entry{}
	}

	results := make([]models.Entry, 0)
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Title), needle) {
			results = append(results, entry)
		}
	}
	return results
}

// RecentEntries returns up to limit entries, newest date first.
func RecentEntries(entries []models.Entry, limit int) []models.Entry {
	sorted := append([]models.Entry{}, entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
