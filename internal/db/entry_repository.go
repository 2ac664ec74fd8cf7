package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/terraincognita07/daylog/internal/models"
)

const EntriesFileName = "entries.json"

var ErrCorruptDocument = errors.New("entry document is corrupt")

// EntryRepository keeps every entry in one JSON document. Reads and writes
// always cover the whole document. There is no locking between concurrent
// writers: the last SaveAll wins.
type EntryRepository struct {
	path string
}

func NewEntryRepository(dataDir string) *EntryRepository {
	return &EntryRepository{path: filepath.Join(dataDir, EntriesFileName)}
}

func (repo *EntryRepository) Path() string {
	return repo.path
}

func (repo *EntryRepository) LoadAll(ctx context.Context) ([]models.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := repo.ensureDocument(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(repo.path)
	if err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}

	entries := make([]models.Entry, 0)
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if entries == nil {
		entries = make([]models.Entry, 0)
	}
	for index := range entries {
		entries[index].Normalize()
	}
	return entries, nil
}

func (repo *EntryRepository) SaveAll(ctx context.Context, entries []models.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	normalized := make([]models.Entry, len(entries))
	copy(normalized, entries)
	for index := range normalized {
		normalized[index].Normalize()
	}

	serialized, err := json.MarshalIndent(normalized, "", "  ")
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	if err := WriteFileAtomic(repo.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write entries: %w", err)
	}
	return nil
}

// Update runs one load-modify-save cycle. It does not guard against a
// concurrent Update landing in between.
func (repo *EntryRepository) Update(ctx context.Context, modify func([]models.Entry) ([]models.Entry, error)) error {
	entries, err := repo.LoadAll(ctx)
	if err != nil {
		return err
	}
	updated, err := modify(entries)
	if err != nil {
		return err
	}
	return repo.SaveAll(ctx, updated)
}

func (repo *EntryRepository) ensureDocument() error {
	if _, err := os.Stat(repo.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat entries: %w", err)
	}
	if err := WriteFileAtomic(repo.path, []byte("[]"), 0o644); err != nil {
		return fmt.Errorf("create entries document: %w", err)
	}
	return nil
}
