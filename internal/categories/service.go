package categories

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
	ErrEmptyName        = errors.New("category name is required")
	ErrCategoryNotFound = errors.New("category not found")
)

type Service struct {
	gw gateway.Client
}

func NewService(gw gateway.Client) *Service {
	return &Service{gw: gw}
}

func (s *Service) List(ctx context.Context, storeID string) ([]domain.Category, error) {
	var rows []domain.Category
	err := s.gw.Query(ctx, gateway.Spec{
		Table:   "categories",
		Filters: []gateway.Filter{gateway.Eq("store_id", storeID)},
		Order:   []gateway.Order{gateway.Asc("sort_order"), gateway.Asc("name")},
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) Add(ctx context.Context, storeID, name string, sortOrder int) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	cat := domain.Category{
		ID:        common.UUID(),
		StoreID:   storeID,
		Name:      name,
		SortOrder: sortOrder,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.gw.Insert(ctx, "categories", &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *Service) Rename(ctx context.Context, storeID, categoryID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	n, err := s.gw.Update(ctx, "categories",
		map[string]interface{}{"name": name, "updated_at": time.Now()},
		gateway.Eq("id", categoryID), gateway.Eq("store_id", storeID))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// Delete removes the category and clears category_id on products that
// referenced it, two independent writes in sequence.
func (s *Service) Delete(ctx context.Context, storeID, categoryID string) error {
	n, err := s.gw.Delete(ctx, "categories",
		gateway.Eq("id", categoryID), gateway.Eq("store_id", storeID))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCategoryNotFound
	}
	_, err = s.gw.Update(ctx, "products",
		map[string]interface{}{"category_id": nil},
		gateway.Eq("category_id", categoryID), gateway.Eq("store_id", storeID))
	return err
}
