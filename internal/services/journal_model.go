package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/daylog/internal/models"
)

var (
	ErrDuplicateDate = errors.New("duplicate entry date")
	ErrDuplicateID   = errors.New("duplicate entry id")
	ErrReorderIndex  = errors.New("display item index out of range")
)

// ResolvedItem is a display item joined with the block or media item it
// points at. Exactly one of Text and Media is set.
type ResolvedItem struct {
	Display models.DisplayItem
	Text    *models.TextBlock
	Media   *models.MediaItem
}

func (item ResolvedItem) IsText() bool {
	return item.Text != nil
}

func (item ResolvedItem) IsMedia() bool {
	return item.Media != nil
}

func NewID() string {
	return uuid.NewString()
}

// SaveDraft applies the save transition to an entry. Empty blocks are
// dropped, text display items are regenerated in authored order and the
// media display items already on the entry follow them unchanged. Blocks
// posted without a timestamp keep the one already stored under their id.
func SaveDraft(existing *models.Entry, date string, title string, blocks []models.TextBlock, now time.Time) models.Entry {
	kept := nonEmptyBlocks(blocks, existing, now)

	order := make([]models.DisplayItem, 0, len(kept))
	for _, block := range kept {
		order = append(order, models.DisplayItem{
			ID:     models.TextDisplayID(block.ID),
			Type:   models.DisplayText,
			ItemID: block.ID,
		})
	}

	if existing == nil {
		entry := models.Entry{
			ID:           NewID(),
			Date:         date,
			Title:        title,
			TextBlocks:   kept,
			Media:        []models.MediaItem{},
			DisplayOrder: order,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return entry
	}

	updated := cloneEntry(*existing)
	for _, item := range updated.DisplayOrder {
		if item.Type == models.DisplayMedia {
			order = append(order, item)
		}
	}
	updated.Title = title
	updated.TextBlocks = kept
	updated.DisplayOrder = order
	updated.UpdatedAt = now
	return updated
}

func nonEmptyBlocks(blocks []models.TextBlock, existing *models.Entry, now time.Time) []models.TextBlock {
	kept := make([]models.TextBlock, 0, len(blocks))
	seen := make(map[string]bool, len(blocks))
	for _, block := range blocks {
		if strings.TrimSpace(block.Text) == "" {
			continue
		}
		if block.ID == "" || seen[block.ID] {
			block.ID = NewID()
		}
		if block.Timestamp.IsZero() && existing != nil {
			if stored, found := existing.FindTextBlock(block.ID); found {
				block.Timestamp = stored.Timestamp
			}
		}
		if block.Timestamp.IsZero() {
			block.Timestamp = now
		}
		seen[block.ID] = true
		kept = append(kept, block)
	}
	return kept
}

// AttachMedia appends uploaded media to the entry for date, creating the
// entry when none exists. Media already attached to the entry is skipped so
// display ids stay unique.
func AttachMedia(existing *models.Entry, date string, title string, items []models.MediaItem, now time.Time) models.Entry {
	var entry models.Entry
	if existing == nil {
		entry = models.Entry{
			ID:           NewID(),
			Date:         date,
			TextBlocks:   []models.TextBlock{},
			Media:        []models.MediaItem{},
			DisplayOrder: []models.DisplayItem{},
			CreatedAt:    now,
		}
	} else {
		entry = cloneEntry(*existing)
	}
	entry.Title = title

	for _, item := range items {
		if _, found := entry.FindMedia(item.ID); found {
			continue
		}
		entry.Media = append(entry.Media, item)
		entry.DisplayOrder = append(entry.DisplayOrder, models.DisplayItem{
			ID:     models.MediaDisplayID(item.ID),
			Type:   models.DisplayMedia,
			ItemID: item.ID,
		})
	}
	entry.UpdatedAt = now
	return entry
}

// RemoveMedia drops a media item and every media display item pointing at
// it. The stored blob is left in place.
func RemoveMedia(entry models.Entry, mediaID string, now time.Time) (models.Entry, bool) {
	if _, found := entry.FindMedia(mediaID); !found {
		return entry, false
	}

	updated := cloneEntry(entry)
	media := make([]models.MediaItem, 0, len(updated.Media))
	for _, item := range updated.Media {
		if item.ID != mediaID {
			media = append(media, item)
		}
	}
	order := make([]models.DisplayItem, 0, len(updated.DisplayOrder))
	for _, item := range updated.DisplayOrder {
		if item.Type == models.DisplayMedia && item.ItemID == mediaID {
			continue
		}
		order = append(order, item)
	}
	updated.Media = media
	updated.DisplayOrder = order
	updated.UpdatedAt = now
	return updated, true
}

// MoveDisplayItem removes the item at from and inserts it at to. All other
// items keep their relative order.
func MoveDisplayItem(order []models.DisplayItem, from int, to int) ([]models.DisplayItem, error) {
	if from < 0 || from >= len(order) || to < 0 || to >= len(order) {
		return nil, fmt.Errorf("%w: move %d -> %d in %d items", ErrReorderIndex, from, to, len(order))
	}

	moved := make([]models.DisplayItem, 0, len(order))
	moved = append(moved, order[:from]...)
	moved = append(moved, order[from+1:]...)

	item := order[from]
	moved = append(moved, models.DisplayItem{})
	copy(moved[to+1:], moved[to:])
	moved[to] = item
	return moved, nil
}

// MoveDisplayItemByID performs the drop of dragged onto target. Dropping an
// item on itself leaves the order unchanged.
func MoveDisplayItemByID(order []models.DisplayItem, draggedID string, targetID string) ([]models.DisplayItem, error) {
	from := displayIndex(order, draggedID)
	to := displayIndex(order, targetID)
	if from == -1 || to == -1 {
		return nil, fmt.Errorf("%w: unknown display item", ErrReorderIndex)
	}
	if from == to {
		return append([]models.DisplayItem(nil), order...), nil
	}
	return MoveDisplayItem(order, from, to)
}

func displayIndex(order []models.DisplayItem, id string) int {
	for index, item := range order {
		if item.ID == id {
			return index
		}
	}
	return -1
}

// ResolveDisplayItems joins the display order with its targets, skipping
// dangling references and unknown item types.
func ResolveDisplayItems(entry models.Entry) []ResolvedItem {
	resolved := make([]ResolvedItem, 0, len(entry.DisplayOrder))
	for _, item := range entry.DisplayOrder {
		switch item.Type {
		case models.DisplayText:
			block, found := entry.FindTextBlock(item.ItemID)
			if !found {
				continue
			}
			resolved = append(resolved, ResolvedItem{Display: item, Text: &block})
		case models.DisplayMedia:
			media, found := entry.FindMedia(item.ItemID)
			if !found {
				continue
			}
			resolved = append(resolved, ResolvedItem{Display: item, Media: &media})
		}
	}
	return resolved
}

// MediaTypeForMIME classifies an upload. Anything that is neither image nor
// video is treated as audio.
func MediaTypeForMIME(contentType string) string {
	normalized := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.HasPrefix(normalized, "image/"):
		return models.MediaImage
	case strings.HasPrefix(normalized, "video/"):
		return models.MediaVideo
	default:
		return models.MediaAudio
	}
}

func FindEntryByDate(entries []models.Entry, date string) (models.Entry, int, bool) {
	for index, entry := range entries {
		if entry.Date == date {
			return entry, index, true
		}
	}
	return models.Entry{}, -1, false
}

// ReplaceEntry swaps the entry stored for the same date, or appends it.
func ReplaceEntry(entries []models.Entry, entry models.Entry) []models.Entry {
	updated := make([]models.Entry, 0, len(entries)+1)
	replaced := false
	for _, existing := range entries {
		if existing.Date == entry.Date {
			updated = append(updated, entry)
			replaced = true
			continue
		}
		updated = append(updated, existing)
	}
	if !replaced {
		updated = append(updated, entry)
	}
	return updated
}

// ValidateEntries checks the per-document invariants that a whole-list
// write must not break: canonical dates, at most one entry per date and
// unique ids. Blank ids are left alone.
func ValidateEntries(entries []models.Entry) error {
	dates := make(map[string]bool, len(entries))
	ids := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if _, canonical, err := ParseEntryDate(entry.Date, time.UTC); err != nil || canonical != entry.Date {
			return fmt.Errorf("%w: %q", ErrInvalidDate, entry.Date)
		}
		if dates[entry.Date] {
			return fmt.Errorf("%w: %s", ErrDuplicateDate, entry.Date)
		}
		dates[entry.Date] = true

		if entry.ID == "" {
			continue
		}
		if ids[entry.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, entry.ID)
		}
		ids[entry.ID] = true
	}
	return nil
}

func cloneEntry(entry models.Entry) models.Entry {
	clone := entry
	clone.TextBlocks = append([]models.TextBlock{}, entry.TextBlocks...)
	clone.Media = append([]models.MediaItem{}, entry.Media...)
	clone.DisplayOrder = append([]models.DisplayItem{}, entry.DisplayOrder...)
	return clone
}
