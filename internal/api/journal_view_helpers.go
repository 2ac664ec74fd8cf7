package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/daylog/internal/models"
	"github.com/terraincognita07/daylog/internal/services"
)

const selectedDateLabelLayout = "Monday, January 2, 2006"

// readItemView is one resolved display item with the ids of its visible
// neighbours, which the read view offers as drop targets.
type readItemView struct {
	services.ResolvedItem
	PrevID string
	NextID string
}

type journalViewOptions struct {
	Month          string
	Query          string
	ErrorMessage   string
	SuccessMessage string
}

func buildReadItems(resolved []services.ResolvedItem) []readItemView {
	items := make([]readItemView, 0, len(resolved))
	for index, item := range resolved {
		view := readItemView{ResolvedItem: item}
		if index > 0 {
			view.PrevID = resolved[index-1].Display.ID
		}
		if index < len(resolved)-1 {
			view.NextID = resolved[index+1].Display.ID
		}
		items = append(items, view)
	}
	return items
}

func (handler *Handler) buildJournalPageData(session *services.Session, options journalViewOptions) fiber.Map {
	now := handler.journal.Now()
	selectedDay, _, err := services.ParseEntryDate(session.SelectedDate(), handler.location)
	if err != nil {
		selectedDay = services.DateAtLocation(now, handler.location)
	}

	monthStart := services.MonthStart(selectedDay, handler.location)
	if year, month, ok := parseMonthQuery(options.Month); ok {
		monthStart = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, handler.location)
	}

	entries := session.Entries()
	entry, hasEntry := session.Current()
	draftTitle, draftBlocks := session.Draft()

	editorMedia := []models.MediaItem{}
	readItems := []readItemView{}
	if hasEntry {
		editorMedia = entry.Media
		readItems = buildReadItems(session.Resolved())
	}

	return fiber.Map{
		"Title":          "daylog | " + session.SelectedDate(),
		"SelectedDate":   session.SelectedDate(),
		"SelectedLabel":  selectedDay.Format(selectedDateLabelLayout),
		"MonthLabel":     monthStart.Format("January 2006"),
		"MonthValue":     monthStart.Format(monthLayout),
		"PrevMonth":      monthStart.AddDate(0, -1, 0).Format(monthLayout),
		"NextMonth":      monthStart.AddDate(0, 1, 0).Format(monthLayout),
		"CalendarDays":   services.BuildCalendarDayStates(monthStart, entries, now, handler.location),
		"Query":          options.Query,
		"Searched":       options.Query != "",
		"SearchResults":  services.SearchByTitle(entries, options.Query),
		"Recent":         services.RecentEntries(entries, services.DefaultRecentEntries),
		"State":          string(session.State()),
		"DraftTitle":     draftTitle,
		"DraftBlocks":    draftBlocks,
		"EditorMedia":    editorMedia,
		"Entry":          entry,
		"ReadItems":      readItems,
		"CanEdit":        session.CanEdit(),
		"ErrorMessage":   options.ErrorMessage,
		"SuccessMessage": options.SuccessMessage,
	}
}

// draftFromForm reads the editor fields. Posted blocks carry no timestamp,
// so the stored one is copied over for blocks the entry already has.
func draftFromForm(c *fiber.Ctx, current *models.Entry) services.Draft {
	ids := formValues(c, "block_id")
	texts := formValues(c, "block_text")

	count := len(ids)
	if len(texts) < count {
		count = len(texts)
	}

	blocks := make([]models.TextBlock, 0, count)
	for index := 0; index < count; index++ {
		block := models.TextBlock{ID: ids[index], Text: texts[index]}
		if block.ID == "" {
			block.ID = services.NewID()
		}
		if current != nil {
			if stored, found := current.FindTextBlock(block.ID); found {
				block.Timestamp = stored.Timestamp
			}
		}
		blocks = append(blocks, block)
	}

	return services.Draft{
		Title:  c.FormValue("title"),
		Blocks: blocks,
	}
}

// formValues returns every value posted under key, for multipart and
// urlencoded bodies alike.
func formValues(c *fiber.Ctx, key string) []string {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		return form.Value[key]
	}
	raw := c.Request().PostArgs().PeekMulti(key)
	values := make([]string, 0, len(raw))
	for _, value := range raw {
		values = append(values, string(value))
	}
	return values
}
