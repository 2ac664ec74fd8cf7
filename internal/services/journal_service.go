package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/daylog/internal/media"
	"github.com/terraincognita07/daylog/internal/models"
)

var ErrNoUpload = errors.New("no file provided")

type EntryRepository interface {
	LoadAll(ctx context.Context) ([]models.Entry, error)
	SaveAll(ctx context.Context, entries []models.Entry) error
	Update(ctx context.Context, modify func([]models.Entry) ([]models.Entry, error)) error
}

type MediaStore interface {
	Put(ctx context.Context, data []byte, originalName string) (media.Object, error)
	Open(ctx context.Context, filename string) (media.Blob, error)
	Exists(ctx context.Context, filename string) (bool, error)
}

// Draft is an unsaved editor state posted back by a client.
type Draft struct {
	Title  string
	Blocks []models.TextBlock
}

type MediaUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// JournalService runs journal operations against the entry document. Each
// mutating call is one whole-document read-modify-write.
type JournalService struct {
	entries  EntryRepository
	media    MediaStore
	location *time.Location
	now      func() time.Time
}

func NewJournalService(entries EntryRepository, mediaStore MediaStore, location *time.Location) *JournalService {
	if location == nil {
		location = time.UTC
	}
	return &JournalService{
		entries:  entries,
		media:    mediaStore,
		location: location,
		now:      time.Now,
	}
}

// WithClock replaces the time source; used by tests.
func (service *JournalService) WithClock(now func() time.Time) *JournalService {
	service.now = now
	return service
}

func (service *JournalService) Location() *time.Location {
	return service.location
}

func (service *JournalService) Now() time.Time {
	return service.now().In(service.location)
}

func (service *JournalService) ListEntries(ctx context.Context) ([]models.Entry, error) {
	return service.entries.LoadAll(ctx)
}

// ReplaceEntries overwrites the whole document. Dates must be canonical,
// unique and not after today, ids unique. Display references are not
// checked.
func (service *JournalService) ReplaceEntries(ctx context.Context, entries []models.Entry) error {
	if err := ValidateEntries(entries); err != nil {
		return err
	}
	now := service.now()
	for _, entry := range entries {
		if IsFutureDate(entry.Date, now, service.location) {
			return fmt.Errorf("%w: %s", ErrFutureDate, entry.Date)
		}
	}
	return service.entries.SaveAll(ctx, entries)
}

// OpenSession loads every entry and selects date.
func (service *JournalService) OpenSession(ctx context.Context, date string) (*Session, error) {
	entries, err := service.entries.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return NewSession(entries, date, service.location, service.now)
}

func (service *JournalService) EntryForDate(ctx context.Context, date string) (models.Entry, error) {
	session, err := service.OpenSession(ctx, date)
	if err != nil {
		return models.Entry{}, err
	}
	entry, found := session.Current()
	if !found {
		return models.Entry{}, ErrEntryNotFound
	}
	return entry, nil
}

// SaveEntry commits title and blocks for date as one edit session.
func (service *JournalService) SaveEntry(ctx context.Context, date string, title string, blocks []models.TextBlock) (models.Entry, error) {
	return service.mutate(ctx, date, func(session *Session) (models.Entry, error) {
		if err := session.ResumeDraft(title, blocks); err != nil {
			return models.Entry{}, err
		}
		return session.Save()
	})
}

// StoreMedia writes one blob and describes it as a media item.
func (service *JournalService) StoreMedia(ctx context.Context, upload MediaUpload) (models.MediaItem, error) {
	object, err := service.media.Put(ctx, upload.Data, upload.Name)
	if err != nil {
		return models.MediaItem{}, err
	}
	return models.MediaItem{
		ID:   object.ID,
		Type: MediaTypeForMIME(upload.ContentType),
		URL:  object.URL,
		Name: object.Name,
	}, nil
}

func (service *JournalService) OpenMedia(ctx context.Context, filename string) (media.Blob, error) {
	return service.media.Open(ctx, filename)
}

// UploadMedia stores each upload and attaches the results to the entry for
// date. Blobs are written before the entry document; a failed upload stops
// the batch and nothing is attached.
func (service *JournalService) UploadMedia(ctx context.Context, date string, uploads []MediaUpload) (models.Entry, error) {
	return service.UploadMediaWithDraft(ctx, date, nil, uploads)
}

// UploadMediaWithDraft is UploadMedia issued from an open editor. The draft
// title is carried onto the entry; the draft blocks stay unsaved.
func (service *JournalService) UploadMediaWithDraft(ctx context.Context, date string, draft *Draft, uploads []MediaUpload) (models.Entry, error) {
	if len(uploads) == 0 {
		return models.Entry{}, ErrNoUpload
	}
	_, canonical, err := ParseEntryDate(date, service.location)
	if err != nil {
		return models.Entry{}, err
	}
	if IsFutureDate(canonical, service.now(), service.location) {
		return models.Entry{}, ErrFutureDate
	}

	items := make([]models.MediaItem, 0, len(uploads))
	for _, upload := range uploads {
		item, err := service.StoreMedia(ctx, upload)
		if err != nil {
			return models.Entry{}, fmt.Errorf("upload %s: %w", upload.Name, err)
		}
		items = append(items, item)
	}

	return service.mutate(ctx, canonical, func(session *Session) (models.Entry, error) {
		if draft != nil {
			if err := session.ResumeDraft(draft.Title, draft.Blocks); err != nil {
				return models.Entry{}, err
			}
		}
		return session.AttachMedia(items)
	})
}

func (service *JournalService) DeleteMedia(ctx context.Context, date string, mediaID string) (models.Entry, error) {
	return service.mutate(ctx, date, func(session *Session) (models.Entry, error) {
		return session.DeleteMedia(mediaID)
	})
}

func (service *JournalService) Reorder(ctx context.Context, date string, from int, to int) (models.Entry, error) {
	return service.mutate(ctx, date, func(session *Session) (models.Entry, error) {
		return session.Move(from, to)
	})
}

func (service *JournalService) ReorderByID(ctx context.Context, date string, draggedID string, targetID string) (models.Entry, error) {
	return service.mutate(ctx, date, func(session *Session) (models.Entry, error) {
		return session.MoveByID(draggedID, targetID)
	})
}

func (service *JournalService) Search(ctx context.Context, query string) ([]models.Entry, error) {
	entries, err := service.entries.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return SearchByTitle(entries, query), nil
}

func (service *JournalService) Calendar(ctx context.Context, monthStart time.Time) ([]CalendarDayState, error) {
	entries, err := service.entries.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildCalendarDayStates(monthStart, entries, service.now(), service.location), nil
}

// Verify checks the stored document and reports entries whose media blobs
// are missing from the media store.
func (service *JournalService) Verify(ctx context.Context) ([]IntegrityIssue, error) {
	entries, err := service.entries.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	issues := CheckIntegrity(entries)
	for _, entry := range entries {
		for _, item := range entry.Media {
			filename, ok := media.FilenameFromURL(item.URL)
			if !ok {
				issues = append(issues, IntegrityIssue{
					Date:    entry.Date,
					EntryID: entry.ID,
					Problem: fmt.Sprintf("media %s has unexpected url %q", item.ID, item.URL),
				})
				continue
			}
			exists, err := service.media.Exists(ctx, filename)
			if err != nil {
				return nil, err
			}
			if !exists {
				issues = append(issues, IntegrityIssue{
					Date:    entry.Date,
					EntryID: entry.ID,
					Problem: fmt.Sprintf("media blob %s is missing", filename),
				})
			}
		}
	}
	return issues, nil
}

func (service *JournalService) mutate(ctx context.Context, date string, apply func(*Session) (models.Entry, error)) (models.Entry, error) {
	var result models.Entry
	err := service.entries.Update(ctx, func(entries []models.Entry) ([]models.Entry, error) {
		session, err := NewSession(entries, date, service.location, service.now)
		if err != nil {
			return nil, err
		}
		result, err = apply(session)
		if err != nil {
			return nil, err
		}
		return session.Entries(), nil
	})
	if err != nil {
		return models.Entry{}, err
	}
	return result, nil
}
