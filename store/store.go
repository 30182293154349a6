// Package store persists short links and their click log.
package store

import (
	"context"
	"errors"

	"shortlink/models"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrDuplicateSlug = errors.New("store: slug already taken")
)

// Store is the persistence contract for short links. Implementations must
// enforce uniqueness of ShortLink.Slug at the storage layer and serialize
// concurrent click-count increments, since multiple service instances may
// share one store.
type Store interface {
	// FindBySlug returns the link mapped to slug, or ErrNotFound.
	FindBySlug(ctx context.Context, slug string) (*models.ShortLink, error)

	// FindByID returns the link with the given id, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*models.ShortLink, error)

	// Insert creates a new link row. Returns ErrDuplicateSlug if the slug
	// is already taken.
	Insert(ctx context.Context, link *models.ShortLink) error

	// IncrementClicks atomically adds one to the link's click counter.
	IncrementClicks(ctx context.Context, id string) error

	// AppendClickEvent records one resolution of a link.
	AppendClickEvent(ctx context.Context, event *models.ClickEvent) error

	// ListByOwner returns all links created by ownerID, oldest first.
	ListByOwner(ctx context.Context, ownerID string) ([]models.ShortLink, error)

	// ListClickEvents returns up to limit click events for a link, newest
	// first.
	ListClickEvents(ctx context.Context, shortLinkID string, limit int) ([]models.ClickEvent, error)
}
