package models

import "time"

const DateLayout = "2006-01-02"

const (
	MediaImage = "image"
	MediaVideo = "video"
	MediaAudio = "audio"
)

const (
	DisplayText  = "text"
	DisplayMedia = "media"
)

// Entry is the journal content for one calendar date. Date is the natural
// key; at most one Entry exists per date.
type Entry struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Title        string        `json:"title"`
	TextBlocks   []TextBlock   `json:"textBlocks"`
	Media        []MediaItem   `json:"media"`
	DisplayOrder []DisplayItem `json:"displayOrder"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

type TextBlock struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// MediaItem references a content-addressed blob. ID is the content hash, so
// the same bytes uploaded to different entries share one blob.
type MediaItem struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

// DisplayItem is a weak reference into TextBlocks or Media of the same entry.
type DisplayItem struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	ItemID string `json:"itemId"`
}

func (entry Entry) FindTextBlock(id string) (TextBlock, bool) {
	for _, block := range entry.TextBlocks {
		if block.ID == id {
			return block, true
		}
	}
	return TextBlock{}, false
}

func (entry Entry) FindMedia(id string) (MediaItem, bool) {
	for _, item := range entry.Media {
		if item.ID == id {
			return item, true
		}
	}
	return MediaItem{}, false
}

// Normalize replaces nil collections with empty ones so the entry encodes
// as [] rather than null.
func (entry *Entry) Normalize() {
	if entry.TextBlocks == nil {
		entry.TextBlocks = []TextBlock{}
	}
	if entry.Media == nil {
		entry.Media = []MediaItem{}
	}
	if entry.DisplayOrder == nil {
		entry.DisplayOrder = []DisplayItem{}
	}
}

func TextDisplayID(blockID string) string {
	return "display-" + blockID
}

func MediaDisplayID(mediaID string) string {
	return "display-" + mediaID
}
