// Package gallery stores exported composition images.
//
// A gallery entry is the transparent PNG produced by an export plus the
// parameters that produced it (template, seed and canvas size). Nothing
// else about a composition is persisted: entries cannot be edited and
// there is no history beyond the list of saved images.
//
// Backends:
//   - [MemoryStore]: in-process storage for development and tests
//   - [MongoStore]: MongoDB-backed storage for the HTTP server
//
// # Usage
//
//	store, err := gallery.NewMongoStore(ctx, "mongodb://localhost:27017", "kozu")
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	entry, err := gallery.NewEntry(result.Template, result.Seed, 500, 500, png)
//	if err != nil {
//	    return err
//	}
//	if err := store.Put(ctx, entry); err != nil {
//	    return err
//	}
//
//	got, err := store.Get(ctx, entry.ID)
//	if errors.Is(err, errors.ErrCodeNotFound) {
//	    // unknown id
//	}
package gallery

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/kozu/pkg/errors"
)

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 50

// Entry is one saved image.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	Template  string    `json:"template"`
	Seed      uint64    `json:"seed"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	PNG       []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the interface for gallery storage backends.
// Implementations must be safe for concurrent use.
type Store interface {
	// Put stores an entry. Entries are immutable; putting an existing ID
	// replaces it.
	Put(ctx context.Context, e *Entry) error

	// Get retrieves an entry including its PNG.
	// Returns a NOT_FOUND error if the ID is unknown.
	Get(ctx context.Context, id uuid.UUID) (*Entry, error)

	// List returns up to limit entries, newest first, without PNG data.
	List(ctx context.Context, limit int) ([]*Entry, error)

	// Delete removes an entry. Deleting a missing entry is not an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// Close releases backend resources.
	Close() error
}

// NewEntry creates an entry with a fresh random ID.
func NewEntry(template string, seed uint64, width, height float64, png []byte) (*Entry, error) {
	if len(png) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "gallery entry needs PNG data")
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "generate entry id")
	}
	return &Entry{
		ID:        id,
		Template:  template,
		Seed:      seed,
		Width:     width,
		Height:    height,
		PNG:       png,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ParseID parses an entry ID.
func ParseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid gallery id %q", s)
	}
	return id, nil
}

func notFound(id uuid.UUID) error {
	return errors.New(errors.ErrCodeNotFound, "gallery entry %s not found", id)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
