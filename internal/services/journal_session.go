package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/daylog/internal/models"
)

var (
	ErrFutureDate          = errors.New("future entries are not allowed")
	ErrNotEditing          = errors.New("entry is not being edited")
	ErrAlreadyEditing      = errors.New("entry is already being edited")
	ErrEntryExists         = errors.New("entry already exists for date")
	ErrEntryNotFound       = errors.New("entry not found")
	ErrTextBlockNotFound   = errors.New("text block not found")
	ErrMediaNotFound       = errors.New("media item not found")
	ErrReorderWhileEditing = errors.New("display items cannot be reordered while editing")
)

type SessionState string

const (
	StateNoEntry SessionState = "no-entry"
	StateViewing SessionState = "viewing"
	StateEditing SessionState = "editing"
)

// Session holds the editing state for one selected calendar date on top of
// an in-memory copy of every entry. Each mutation replaces the affected
// entry in that copy; callers persist Entries() afterwards.
type Session struct {
	entries  []models.Entry
	location *time.Location
	now      func() time.Time

	selected    string
	editing     bool
	draftTitle  string
	draftBlocks []models.TextBlock
}

func NewSession(entries []models.Entry, date string, location *time.Location, now func() time.Time) (*Session, error) {
	if location == nil {
		location = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	session := &Session{
		entries:  append([]models.Entry{}, entries...),
		location: location,
		now:      now,
	}
	if err := session.SelectDate(date); err != nil {
		return nil, err
	}
	return session, nil
}

// SelectDate switches to another date. A draft in progress is discarded.
func (session *Session) SelectDate(date string) error {
	_, canonical, err := ParseEntryDate(date, session.location)
	if err != nil {
		return err
	}
	session.selected = canonical
	session.editing = false
	session.loadDraft()
	return nil
}

func (session *Session) SelectedDate() string {
	return session.selected
}

func (session *Session) State() SessionState {
	if session.editing {
		return StateEditing
	}
	if _, found := session.Current(); found {
		return StateViewing
	}
	return StateNoEntry
}

func (session *Session) Current() (models.Entry, bool) {
	entry, _, found := FindEntryByDate(session.entries, session.selected)
	return entry, found
}

func (session *Session) Entries() []models.Entry {
	return append([]models.Entry{}, session.entries...)
}

func (session *Session) CanEdit() bool {
	return !IsFutureDate(session.selected, session.now(), session.location)
}

// BeginCreate starts editing a date that has no entry yet.
func (session *Session) BeginCreate() error {
	if session.editing {
		return ErrAlreadyEditing
	}
	if _, found := session.Current(); found {
		return ErrEntryExists
	}
	if !session.CanEdit() {
		return ErrFutureDate
	}
	session.editing = true
	session.loadDraft()
	return nil
}

// BeginEdit starts editing the existing entry of the selected date.
func (session *Session) BeginEdit() error {
	if session.editing {
		return ErrAlreadyEditing
	}
	if _, found := session.Current(); !found {
		return ErrEntryNotFound
	}
	if !session.CanEdit() {
		return ErrFutureDate
	}
	session.editing = true
	session.loadDraft()
	return nil
}

// ResumeDraft enters editing with a draft supplied by the caller, as when
// an editor form is posted back.
func (session *Session) ResumeDraft(title string, blocks []models.TextBlock) error {
	if !session.CanEdit() {
		return ErrFutureDate
	}
	session.editing = true
	session.draftTitle = title
	session.draftBlocks = append([]models.TextBlock{}, blocks...)
	return nil
}

func (session *Session) Draft() (string, []models.TextBlock) {
	return session.draftTitle, append([]models.TextBlock{}, session.draftBlocks...)
}

func (session *Session) AddBlock() (models.TextBlock, error) {
	if !session.editing {
		return models.TextBlock{}, ErrNotEditing
	}
	block := models.TextBlock{
		ID:        NewID(),
		Text:      "",
		Timestamp: session.now(),
	}
	session.draftBlocks = append(session.draftBlocks, block)
	return block, nil
}

func (session *Session) RemoveBlock(id string) error {
	if !session.editing {
		return ErrNotEditing
	}
	kept := make([]models.TextBlock, 0, len(session.draftBlocks))
	for _, block := range session.draftBlocks {
		if block.ID != id {
			kept = append(kept, block)
		}
	}
	if len(kept) == len(session.draftBlocks) {
		return ErrTextBlockNotFound
	}
	session.draftBlocks = kept
	return nil
}

// Save commits the draft and returns to viewing.
func (session *Session) Save() (models.Entry, error) {
	if !session.editing {
		return models.Entry{}, ErrNotEditing
	}
	if !session.CanEdit() {
		return models.Entry{}, ErrFutureDate
	}

	var existing *models.Entry
	if current, found := session.Current(); found {
		existing = &current
	}
	saved := SaveDraft(existing, session.selected, session.draftTitle, session.draftBlocks, session.now())
	session.entries = ReplaceEntry(session.entries, saved)
	session.editing = false
	session.loadDraft()
	return saved, nil
}

// AttachMedia adds uploaded media to the selected date and leaves the
// session in editing. An unsaved draft survives; its title is carried onto
// the entry.
func (session *Session) AttachMedia(items []models.MediaItem) (models.Entry, error) {
	if !session.CanEdit() {
		return models.Entry{}, ErrFutureDate
	}

	var existing *models.Entry
	title := session.draftTitle
	if current, found := session.Current(); found {
		existing = &current
		if !session.editing {
			title = current.Title
		}
	}
	updated := AttachMedia(existing, session.selected, title, items, session.now())
	session.entries = ReplaceEntry(session.entries, updated)
	if !session.editing {
		session.editing = true
		session.loadDraft()
	}
	return updated, nil
}

func (session *Session) DeleteMedia(mediaID string) (models.Entry, error) {
	current, found := session.Current()
	if !found {
		return models.Entry{}, ErrEntryNotFound
	}
	updated, removed := RemoveMedia(current, mediaID, session.now())
	if !removed {
		return models.Entry{}, ErrMediaNotFound
	}
	session.entries = ReplaceEntry(session.entries, updated)
	return updated, nil
}

// Move reorders the display items of the selected entry. Only allowed
// outside editing.
func (session *Session) Move(from int, to int) (models.Entry, error) {
	return session.reorder(func(order []models.DisplayItem) ([]models.DisplayItem, error) {
		return MoveDisplayItem(order, from, to)
	})
}

func (session *Session) MoveByID(draggedID string, targetID string) (models.Entry, error) {
	return session.reorder(func(order []models.DisplayItem) ([]models.DisplayItem, error) {
		return MoveDisplayItemByID(order, draggedID, targetID)
	})
}

func (session *Session) reorder(move func([]models.DisplayItem) ([]models.DisplayItem, error)) (models.Entry, error) {
	if session.editing {
		return models.Entry{}, ErrReorderWhileEditing
	}
	current, found := session.Current()
	if !found {
		return models.Entry{}, ErrEntryNotFound
	}
	order, err := move(current.DisplayOrder)
	if err != nil {
		return models.Entry{}, err
	}
	updated := cloneEntry(current)
	updated.DisplayOrder = order
	updated.UpdatedAt = session.now()
	session.entries = ReplaceEntry(session.entries, updated)
	return updated, nil
}

// Resolved returns the read view of the selected entry.
func (session *Session) Resolved() []ResolvedItem {
	current, found := session.Current()
	if !found {
		return []ResolvedItem{}
	}
	return ResolveDisplayItems(current)
}

func (session *Session) loadDraft() {
	current, found := session.Current()
	if !found {
		session.draftTitle = ""
		session.draftBlocks = []models.TextBlock{}
		return
	}
	session.draftTitle = current.Title
	session.draftBlocks = append([]models.TextBlock{}, current.TextBlocks...)
}
