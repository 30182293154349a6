package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"shortlink/models"
)

// GormStore is the Postgres-backed Store. The unique index on
// short_links.slug is the uniqueness authority; the click counter is
// incremented with a SQL expression so concurrent resolutions never lose
// updates.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open gorm connection. The connection must be opened
// with TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindBySlug(ctx context.Context, slug string) (*models.ShortLink, error) {
	var link models.ShortLink
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find link by slug %q: %w", slug, err)
	}
	return &link, nil
}

func (s *GormStore) FindByID(ctx context.Context, id string) (*models.ShortLink, error) {
	var link models.ShortLink
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find link by id %s: %w", id, err)
	}
	return &link, nil
}

func (s *GormStore) Insert(ctx context.Context, link *models.ShortLink) error {
	err := s.db.WithContext(ctx).Create(link).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateSlug
	}
	if err != nil {
		return fmt.Errorf("insert link %q: %w", link.Slug, err)
	}
	return nil
}

func (s *GormStore) IncrementClicks(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Model(&models.ShortLink{}).
		Where("id = ?", id).
		UpdateColumn("click_count", gorm.Expr("click_count + ?", 1))
	if result.Error != nil {
		return fmt.Errorf("increment clicks for link %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) AppendClickEvent(ctx context.Context, event *models.ClickEvent) error {
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("append click event for link %s: %w", event.ShortLinkID, err)
	}
	return nil
}

func (s *GormStore) ListByOwner(ctx context.Context, ownerID string) ([]models.ShortLink, error) {
	var links []models.ShortLink
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at asc").
		Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("list links for owner %s: %w", ownerID, err)
	}
	return links, nil
}

func (s *GormStore) ListClickEvents(ctx context.Context, shortLinkID string, limit int) ([]models.ClickEvent, error) {
	var events []models.ClickEvent
	err := s.db.WithContext(ctx).
		Where("short_link_id = ?", shortLinkID).
		Order("clicked_at desc").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("list click events for link %s: %w", shortLinkID, err)
	}
	return events, nil
}
