package media

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"strings"
)

const URLPrefix = "/api/media/"

var ErrNotFound = errors.New("media not found")

// Backend persists blobs under their stored filename.
type Backend interface {
	Write(ctx context.Context, filename string, data []byte) error
	Read(ctx context.Context, filename string) ([]byte, error)
	Exists(ctx context.Context, filename string) (bool, error)
}

type Object struct {
	ID       string
	Name     string
	Filename string
	URL      string
}

type Blob struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Store is content addressed: a blob's id is the MD5 of its bytes, so the
// same upload always lands on the same filename. Blobs are never deleted.
type Store struct {
	backend Backend
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

func (store *Store) Put(ctx context.Context, data []byte, originalName string) (Object, error) {
	sum := md5.Sum(data)
	id := hex.EncodeToString(sum[:])
	filename := id + Extension(originalName)

	if err := store.backend.Write(ctx, filename, data); err != nil {
		return Object{}, fmt.Errorf("store media %s: %w", filename, err)
	}

	return Object{
		ID:       id,
		Name:     originalName,
		Filename: filename,
		URL:      URLPrefix + filename,
	}, nil
}

func (store *Store) Open(ctx context.Context, filename string) (Blob, error) {
	if !validFilename(filename) {
		return Blob{}, ErrNotFound
	}
	data, err := store.backend.Read(ctx, filename)
	if err != nil {
		return Blob{}, err
	}
	return Blob{
		Filename:    filename,
		ContentType: ContentType(filename),
		Data:        data,
	}, nil
}

func (store *Store) Exists(ctx context.Context, filename string) (bool, error) {
	if !validFilename(filename) {
		return false, nil
	}
	return store.backend.Exists(ctx, filename)
}

// FilenameFromURL returns the stored filename a media URL points at.
func FilenameFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, URLPrefix) {
		return "", false
	}
	filename := strings.TrimPrefix(url, URLPrefix)
	return filename, validFilename(filename)
}

// Extension returns the suffix of the last path element starting at its
// last dot. Names without a dot, or whose only dot leads the name, have no
// extension.
func Extension(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	index := strings.LastIndex(base, ".")
	if index <= 0 {
		return ""
	}
	return base[index:]
}

func validFilename(filename string) bool {
	if filename == "" || filename == "." || filename == ".." {
		return false
	}
	return !strings.ContainsAny(filename, "/\\\x00")
}
