package stores

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/rashedalhajeri/quickstore-builder/internal/domain"
	"github.com/rashedalhajeri/quickstore-builder/internal/gateway"
	"github.com/rashedalhajeri/quickstore-builder/pkg/common"
)

// Shipping methods.
const (
	ShippingStoreDelivery  = "store_delivery"
	ShippingBronzeDelivery = "bronze_delivery"
)

var (
	ErrDuplicateArea     = errors.New("delivery area already exists")
	ErrEmptyAreaName     = errors.New("delivery area name is required")
	ErrBadShippingMethod = errors.New("unknown shipping method")
)

// DefaultDeliveryAreas seeds the six governorates a new store starts
// with before the merchant edits the list.
func DefaultDeliveryAreas(storeID string) []domain.DeliveryArea {
	seed := []struct {
		name  string
		price float64
	}{
		{"Capital", 2},
		{"Hawally", 2},
		{"Farwaniya", 3},
		{"Ahmadi", 3},
		{"Jahra", 4},
		{"Mubarak Al-Kabeer", 3},
	}
	areas := make([]domain.DeliveryArea, 0, len(seed))
	for _, a := range seed {
		areas = append(areas, domain.DeliveryArea{
			ID:        common.UUID(),
			StoreID:   storeID,
			Name:      a.name,
			Price:     a.price,
			Enabled:   true,
			CreatedAt: time.Now(),
		})
	}
	return areas
}

// GetShippingSettings returns the store's shipping settings or nil when
// the merchant never saved any.
func (s *Service) GetShippingSettings(ctx context.Context, storeID string) (*domain.StoreShippingSettings, error) {
	var settings domain.StoreShippingSettings
	found, err := s.gw.QueryMaybeOne(ctx, gateway.Spec{
		Table:   "store_shipping_settings",
		Filters: []gateway.Filter{gateway.Eq("store_id", storeID)},
	}, &settings)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &settings, nil
}

// SaveShippingSettings updates the settings row or inserts it on first
// save.
func (s *Service) SaveShippingSettings(ctx context.Context, storeID string, in domain.StoreShippingSettings) error {
	if in.ShippingMethod != ShippingStoreDelivery && in.ShippingMethod != ShippingBronzeDelivery {
		return ErrBadShippingMethod
	}

	var existing domain.StoreShippingSettings
	found, err := s.gw.QueryMaybeOne(ctx, gateway.Spec{
		Table:   "store_shipping_settings",
		Filters: []gateway.Filter{gateway.Eq("store_id", storeID)},
	}, &existing)
	if err != nil {
		return err
	}
	if found {
		_, err = s.gw.Update(ctx, "store_shipping_settings", map[string]interface{}{
			"shipping_method":         in.ShippingMethod,
			"free_shipping":           in.FreeShipping,
			"free_shipping_min_order": in.FreeShippingMinOrder,
			"standard_delivery_time":  in.StandardDeliveryTime,
			"delivery_time_unit":      in.DeliveryTimeUnit,
			"bronze_delivery_speed":   in.BronzeDeliverySpeed,
			"updated_at":              time.Now(),
		}, gateway.Eq("store_id", storeID))
		return err
	}
	in.ID = common.UUID()
	in.StoreID = storeID
	in.CreatedAt = time.Now()
	in.UpdatedAt = in.CreatedAt
	return s.gw.Insert(ctx, "store_shipping_settings", &in)
}

// GetDeliveryAreas lists the store's delivery areas by name.
func (s *Service) GetDeliveryAreas(ctx context.Context, storeID string) ([]domain.DeliveryArea, error) {
	var areas []domain.DeliveryArea
	err := s.gw.Query(ctx, gateway.Spec{
		Table:   "store_delivery_areas",
		Filters: []gateway.Filter{gateway.Eq("store_id", storeID)},
		Order:   []gateway.Order{gateway.Asc("name")},
	}, &areas)
	if err != nil {
		return nil, err
	}
	return areas, nil
}

// SaveDeliveryAreas replaces the store's delivery area list wholesale:
// validate names (non-empty, unique case-insensitively), delete the old
// rows, insert the new ones. No rollback between the two writes.
func (s *Service) SaveDeliveryAreas(ctx context.Context, storeID string, areas []domain.DeliveryArea) error {
	seen := map[string]bool{}
	for _, a := range areas {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			return ErrEmptyAreaName
		}
		key := strings.ToLower(name)
		if seen[key] {
			return errors.Wrap(ErrDuplicateArea, name)
		}
		seen[key] = true
	}

	if _, err := s.gw.Delete(ctx, "store_delivery_areas", gateway.Eq("store_id", storeID)); err != nil {
		return err
	}
	if len(areas) == 0 {
		return nil
	}
	rows := make([]domain.DeliveryArea, 0, len(areas))
	for _, a := range areas {
		a.ID = common.UUID()
		a.StoreID = storeID
		a.Name = strings.TrimSpace(a.Name)
		a.CreatedAt = time.Now()
		rows = append(rows, a)
	}
	return s.gw.Insert(ctx, "store_delivery_areas", rows)
}
