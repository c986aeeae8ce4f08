package sections

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/rashedalhajeri/quickstore-builder/internal/domain"
	"github.com/rashedalhajeri/quickstore-builder/internal/gateway"
	"github.com/rashedalhajeri/quickstore-builder/pkg/common"
)

var (
	ErrEmptyName       = errors.New("section name is required")
	ErrUnknownType     = errors.New("unknown section type")
	ErrSectionNotFound = errors.New("section not found")
)

// Service manages the section configurations of a store.
type Service struct {
	gw gateway.Client
}

func NewService(gw gateway.Client) *Service {
	return &Service{gw: gw}
}

// List returns the sections of a store in display order.
func (s *Service) List(ctx context.Context, storeID string) ([]domain.Section, error) {
	var rows []domain.Section
	err := s.gw.Query(ctx, gateway.Spec{
		Table:   "sections",
		Filters: []gateway.Filter{gateway.Eq("store_id", storeID)},
		Order:   []gateway.Order{gateway.Asc("sort_order")},
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Add appends a section at sortOrder for the store.
func (s *Service) Add(ctx context.Context, storeID, name, sectionType string, sortOrder int, isActive bool) (*domain.Section, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if !domain.ValidSectionType(sectionType) {
		return nil, ErrUnknownType
	}
	sec := domain.Section{
		ID:          common.UUID(),
		StoreID:     storeID,
		Name:        name,
		SectionType: sectionType,
		SortOrder:   sortOrder,
		IsActive:    isActive,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.gw.Insert(ctx, "sections", &sec); err != nil {
		return nil, err
	}
	return &sec, nil
}

// Update rewrites the editable fields of a section, scoped to its store.
func (s *Service) Update(ctx context.Context, storeID string, sec domain.Section) error {
	if !domain.ValidSectionType(sec.SectionType) {
		return ErrUnknownType
	}
	n, err := s.gw.Update(ctx, "sections", map[string]interface{}{
		"name":         strings.TrimSpace(sec.Name),
		"section_type": sec.SectionType,
		"category_id":  sec.CategoryID,
		"is_active":    sec.IsActive,
		"updated_at":   time.Now(),
	}, gateway.Eq("id", sec.ID), gateway.Eq("store_id", storeID))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSectionNotFound
	}
	return nil
}

// Delete removes a section; products keep their section_id but the
// storefront stops rendering the section.
func (s *Service) Delete(ctx context.Context, storeID, sectionID string) error {
	n, err := s.gw.Delete(ctx, "sections",
		gateway.Eq("id", sectionID), gateway.Eq("store_id", storeID))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSectionNotFound
	}
	return nil
}

// Reorder persists a new display sequence: one sort_order update per
// section id, in the given order. Failures abort the remaining writes
// and already-applied updates stay applied.
func (s *Service) Reorder(ctx context.Context, storeID string, orderedIDs []string) error {
	for i, id := range orderedIDs {
		_, err := s.gw.Update(ctx, "sections",
			map[string]interface{}{"sort_order": i, "updated_at": time.Now()},
			gateway.Eq("id", id), gateway.Eq("store_id", storeID))
		if err != nil {
			return errors.Wrapf(err, "reorder section %s", id)
		}
	}
	return nil
}
