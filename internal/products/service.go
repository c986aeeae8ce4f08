package products

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rashedalhajeri/quickstore-builder/internal/domain"
	"github.com/rashedalhajeri/quickstore-builder/internal/gateway"
	"github.com/rashedalhajeri/quickstore-builder/pkg/common"
)

var (
	// ErrLinkedToOrders blocks hard deletion of a product referenced by
	// order items.
	ErrLinkedToOrders = errors.New("product is linked to orders and cannot be deleted")

	// ErrAllLinkedToOrders is the aggregated failure when every id of a
	// bulk delete is referenced by order items.
	ErrAllLinkedToOrders = errors.New("all selected products are linked to orders and cannot be deleted")

	ErrInvalidProduct = errors.New("invalid product")
)

// Service is the product data-access layer: filtered reads through the
// gateway, lifecycle mutations, and the bulk operations of the dashboard.
type Service struct {
	gw gateway.Client
}

func NewService(gw gateway.Client) *Service {
	return &Service{gw: gw}
}

// FetchWithFilters returns mapped products for a section type and
// optional store/category/section scope. See BuildProductSpec for the
// filter/order policy.
func (s *Service) FetchWithFilters(ctx context.Context, opts FetchOptions) ([]domain.Product, error) {
	var rows []RawProductRow
	if err := s.gw.Query(ctx, BuildProductSpec(opts), &rows); err != nil {
		zap.S().Errorf("fetch products failed: %s", err.Error())
		return nil, err
	}
	return MapRawProducts(rows), nil
}

func (s *Service) GetByID(ctx context.Context, productID string) (*domain.Product, error) {
	var row RawProductRow
	err := s.gw.QueryOne(ctx, gateway.Spec{
		Table:   "products",
		Filters: []gateway.Filter{gateway.Eq("id", productID)},
	}, &row)
	if err != nil {
		return nil, err
	}
	p := MapRawProduct(row)
	return &p, nil
}

// Validate enforces the create/update form rules: name, positive price,
// at least one image, and value lists present when the matching variant
// flag is on.
func Validate(p *domain.Product) error {
	switch {
	case p.Name == "":
		return errors.Wrap(ErrInvalidProduct, "name is required")
	case p.Price <= 0:
		return errors.Wrap(ErrInvalidProduct, "price must be positive")
	case len(p.Images) == 0:
		return errors.Wrap(ErrInvalidProduct, "at least one image is required")
	case p.HasColors && len(p.AvailableColors) == 0:
		return errors.Wrap(ErrInvalidProduct, "available colors are required")
	case p.HasSizes && len(p.AvailableSizes) == 0:
		return errors.Wrap(ErrInvalidProduct, "available sizes are required")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, p *domain.Product) error {
	if err := Validate(p); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = common.UUID()
	}
	p.IsActive = true
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	return s.gw.Insert(ctx, "products", p)
}

// Update patches a product of one store and returns the updated row.
// The store_id filter is the tenancy guard: a patch aimed at another
// store's product matches nothing and reports ErrNotFound.
func (s *Service) Update(ctx context.Context, storeID, productID string, patch map[string]interface{}) (*domain.Product, error) {
	patch["updated_at"] = time.Now()
	affected, err := s.gw.Update(ctx, "products", patch,
		gateway.Eq("id", productID), gateway.Eq("store_id", storeID))
	if err != nil {
		zap.S().Errorf("update product %s failed: %s", productID, err.Error())
		return nil, err
	}
	if affected == 0 {
		return nil, gateway.ErrNotFound
	}
	return s.GetByID(ctx, productID)
}

// Delete removes the product row without any referential check. Archive
// or HardDelete are what the dashboard paths use.
func (s *Service) Delete(ctx context.Context, storeID, productID string) error {
	_, err := s.gw.Delete(ctx, "products",
		gateway.Eq("id", productID), gateway.Eq("store_id", storeID))
	return err
}

// HardDelete removes the product only when no order item references it,
// otherwise it fails with ErrLinkedToOrders and changes nothing.
func (s *Service) HardDelete(ctx context.Context, storeID, productID string) error {
	var refs []domain.OrderItem
	err := s.gw.Query(ctx, gateway.Spec{
		Table:   "order_items",
		Selects: []string{"order_items.id"},
		Filters: []gateway.Filter{gateway.Eq("product_id", productID)},
		Limit:   1,
	}, &refs)
	if err != nil {
		return err
	}
	if len(refs) > 0 {
		return ErrLinkedToOrders
	}
	affected, err := s.gw.Delete(ctx, "products",
		gateway.Eq("id", productID), gateway.Eq("store_id", storeID))
	if err != nil {
		return err
	}
	if affected == 0 {
		return gateway.ErrNotFound
	}
	return nil
}

// Archive flips the soft-delete flag and returns the updated product.
func (s *Service) Archive(ctx context.Context, storeID, productID string, archived bool) (*domain.Product, error) {
	return s.Update(ctx, storeID, productID, map[string]interface{}{"is_archived": archived})
}

// Activate flips the active flag and returns the updated product.
func (s *Service) Activate(ctx context.Context, storeID, productID string, active bool) (*domain.Product, error) {
	return s.Update(ctx, storeID, productID, map[string]interface{}{"is_active": active})
}

// BulkArchive applies one IN-filtered update across all ids of one
// store. This is the gateway-level bulk path; the dashboard's per-id
// fan-out lives in SetActiveEach/SetArchivedEach.
func (s *Service) BulkArchive(ctx context.Context, storeID string, productIDs []string, archived bool) error {
	if len(productIDs) == 0 {
		return nil
	}
	_, err := s.gw.Update(ctx, "products",
		map[string]interface{}{"is_archived": archived, "updated_at": time.Now()},
		gateway.In("id", productIDs), gateway.Eq("store_id", storeID))
	return err
}

// BulkActivate applies one IN-filtered update across all ids of one
// store.
func (s *Service) BulkActivate(ctx context.Context, storeID string, productIDs []string, active bool) error {
	if len(productIDs) == 0 {
		return nil
	}
	_, err := s.gw.Update(ctx, "products",
		map[string]interface{}{"is_active": active, "updated_at": time.Now()},
		gateway.In("id", productIDs), gateway.Eq("store_id", storeID))
	return err
}
