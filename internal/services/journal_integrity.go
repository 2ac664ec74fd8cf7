package services

import (
	"fmt"
	"time"

	"github.com/terraincognita07/daylog/internal/models"
)

type IntegrityIssue struct {
	Date    string
	EntryID string
	Problem string
}

func (issue IntegrityIssue) String() string {
	return fmt.Sprintf("%s (%s): %s", issue.Date, issue.EntryID, issue.Problem)
}

// CheckIntegrity reports entries that break the document invariants.
// Dangling display references are reported although rendering tolerates
// them.
func CheckIntegrity(entries []models.Entry) []IntegrityIssue {
	issues := make([]IntegrityIssue, 0)
	report := func(entry models.Entry, format string, args ...any) {
		issues = append(issues, IntegrityIssue{
			Date:    entry.Date,
			EntryID: entry.ID,
			Problem: fmt.Sprintf(format, args...),
		})
	}

	seenDates := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if _, canonical, err := ParseEntryDate(entry.Date, time.UTC); err != nil || canonical != entry.Date {
			report(entry, "malformed date %q", entry.Date)
		}
		if seenDates[entry.Date] {
			report(entry, "duplicate entry for date")
		}
		seenDates[entry.Date] = true

		displayIDs := make(map[string]bool, len(entry.DisplayOrder))
		referenced := make(map[string]bool, len(entry.DisplayOrder))
		for _, item := range entry.DisplayOrder {
			if displayIDs[item.ID] {
				report(entry, "duplicate display item %s", item.ID)
			}
			displayIDs[item.ID] = true
			referenced[item.Type+":"+item.ItemID] = true

			switch item.Type {
			case models.DisplayText:
				if _, found := entry.FindTextBlock(item.ItemID); !found {
					report(entry, "display item %s references missing text block %s", item.ID, item.ItemID)
				}
			case models.DisplayMedia:
				if _, found := entry.FindMedia(item.ItemID); !found {
					report(entry, "display item %s references missing media %s", item.ID, item.ItemID)
				}
			default:
				report(entry, "display item %s has unknown type %q", item.ID, item.Type)
			}
		}

		for _, block := range entry.TextBlocks {
			if !referenced[models.DisplayText+":"+block.ID] {
				report(entry, "text block %s is not in the display order", block.ID)
			}
		}
		for _, media := range entry.Media {
			if !referenced[models.DisplayMedia+":"+media.ID] {
				report(entry, "media %s is not in the display order", media.ID)
			}
		}
	}
	return issues
}
