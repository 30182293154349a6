package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/google/uuid"

	"shortlink/analytics"
	"shortlink/models"
	"shortlink/slug"
	"shortlink/store"
)

const (
	maxAllocationAttempts = 5
	recentClickLimit      = 50
	topLinkCount          = 5
)

// LinkService owns slug allocation, redirect resolution, and the analytics
// reads. It keeps no state of its own; uniqueness and counter atomicity are
// the store's job.
type LinkService struct {
	store store.Store
	slugs *slug.Generator
	now   func() time.Time
}

func NewLinkService(st store.Store, slugs *slug.Generator) *LinkService {
	return &LinkService{store: st, slugs: slugs, now: time.Now}
}

// Allocate creates a new ShortLink owned by ownerID pointing at destination.
// There is no existence pre-check: the allocator inserts a candidate and
// treats the store's unique-constraint rejection as a miss, so the
// constraint stays the sole uniqueness authority under concurrent creation.
func (s *LinkService) Allocate(ctx context.Context, destination, ownerID string) (*models.ShortLink, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}
	if !validDestination(destination) {
		return nil, ErrInvalidDestination
	}

	for attempt := 0; attempt < maxAllocationAttempts; attempt++ {
		link := &models.ShortLink{
			ID:             uuid.NewString(),
			Slug:           s.slugs.Next(),
			DestinationURL: destination,
			OwnerID:        ownerID,
			CreatedAt:      s.now(),
		}

		err := s.store.Insert(ctx, link)
		if err == nil {
			return link, nil
		}
		if errors.Is(err, store.ErrDuplicateSlug) {
			// Candidate taken, possibly by a concurrent allocation that
			// won the race. Move on to the next candidate.
			continue
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return nil, ErrAllocationExhausted
}

func validDestination(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.IsAbs() && u.Host != ""
}

// Resolve translates a slug into its destination URL and records the access:
// the click counter is incremented first (it is the authoritative aggregate),
// then a ClickEvent is appended with the caller-supplied user agent and
// referer stored verbatim. A failed append is logged and swallowed; a counted
// click without an event is tolerable, the reverse is not.
func (s *LinkService) Resolve(ctx context.Context, slugValue, userAgent, referer string) (string, error) {
	link, err := s.store.FindBySlug(ctx, slugValue)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrSlugNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if err := s.store.IncrementClicks(ctx, link.ID); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	event := &models.ClickEvent{
		ID:          uuid.NewString(),
		ShortLinkID: link.ID,
		ClickedAt:   s.now(),
		UserAgent:   userAgent,
		Referer:     referer,
	}
	if err := s.store.AppendClickEvent(ctx, event); err != nil {
		log.Printf("Failed to record click event for %s: %v", slugValue, err)
	}

	return link.DestinationURL, nil
}

// ListLinks returns all of the owner's links, oldest first.
func (s *LinkService) ListLinks(ctx context.Context, ownerID string) ([]models.ShortLink, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}

	links, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return links, nil
}

// LinkAnalytics is the per-link analytics payload: the link's summary
// counters, its most recent clicks, and the derived statistics.
type LinkAnalytics struct {
	Link         *models.ShortLink       `json:"link"`
	RecentClicks []models.ClickEvent     `json:"recent_clicks"`
	Devices      []analytics.DeviceShare `json:"devices"`
	ClicksPerDay float64                 `json:"clicks_per_day"`
}

// Analytics returns the analytics payload for one link. Only the link's
// owner may fetch it.
func (s *LinkService) Analytics(ctx context.Context, linkID, requesterID string) (*LinkAnalytics, error) {
	if requesterID == "" {
		return nil, ErrUnauthenticated
	}

	link, err := s.store.FindByID(ctx, linkID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrSlugNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if link.OwnerID != requesterID {
		return nil, ErrForbidden
	}

	events, err := s.store.ListClickEvents(ctx, link.ID, recentClickLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return &LinkAnalytics{
		Link:         link,
		RecentClicks: events,
		Devices:      analytics.DeviceDistribution(events, link.ClickCount),
		ClicksPerDay: analytics.ClicksPerDay(link.ClickCount, link.CreatedAt, s.now()),
	}, nil
}

// Dashboard summarizes an owner's link set: totals plus the top links by
// click count with their share of all clicks.
type Dashboard struct {
	TotalLinks  int                    `json:"total_links"`
	TotalClicks int                    `json:"total_clicks"`
	TopLinks    []analytics.RankedLink `json:"top_links"`
}

func (s *LinkService) Dashboard(ctx context.Context, ownerID string) (*Dashboard, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}

	links, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return &Dashboard{
		TotalLinks:  len(links),
		TotalClicks: analytics.TotalClicks(links),
		TopLinks:    analytics.RankLinks(links, topLinkCount),
	}, nil
}
