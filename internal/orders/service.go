package orders

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rashedalhajeri/quickstore-builder/internal/domain"
	"github.com/rashedalhajeri/quickstore-builder/internal/gateway"
	"github.com/rashedalhajeri/quickstore-builder/pkg/common"
)

var (
	ErrInvalidStatus = errors.New("invalid order status")
	ErrEmptyOrder    = errors.New("order has no items")
)

// StatusAll disables status filtering in FetchOptions.
const StatusAll = "all"

// FetchOptions shapes a paginated order list read. Page is 0-based to
// match the range arithmetic of the storefront backend.
type FetchOptions struct {
	Status    string
	Search    string
	Page      int
	PageSize  int
	OrderBy   string
	Ascending bool
	// CreatedFrom/CreatedTo bound created_at when non-zero.
	CreatedFrom time.Time
	CreatedTo   time.Time
}

// Service is the order data-access layer.
type Service struct {
	gw gateway.Client
}

func NewService(gw gateway.Client) *Service {
	return &Service{gw: gw}
}

// orderSortColumns whitelists sortable columns.
var orderSortColumns = map[string]bool{
	"created_at":    true,
	"updated_at":    true,
	"total":         true,
	"status":        true,
	"order_number":  true,
	"customer_name": true,
}

// BuildOrderSpec translates FetchOptions into a gateway spec scoped to
// one store: optional status equality, OR ILIKE search across order
// number and customer fields, whitelisted ordering and an offset range.
func BuildOrderSpec(storeID string, opts FetchOptions) gateway.Spec {
	spec := gateway.Spec{
		Table:   "orders",
		Filters: []gateway.Filter{gateway.Eq("store_id", storeID)},
	}
	if opts.Status != "" && opts.Status != StatusAll {
		spec.Filters = append(spec.Filters, gateway.Eq("status", opts.Status))
	}
	if q := strings.TrimSpace(opts.Search); q != "" {
		spec.Filters = append(spec.Filters,
			gateway.OrILike(q, "order_number", "customer_name", "customer_email"))
	}
	if !opts.CreatedFrom.IsZero() {
		spec.Filters = append(spec.Filters, gateway.Gte("created_at", opts.CreatedFrom))
	}
	if !opts.CreatedTo.IsZero() {
		spec.Filters = append(spec.Filters, gateway.Lte("created_at", opts.CreatedTo))
	}

	orderBy := opts.OrderBy
	if !orderSortColumns[orderBy] {
		orderBy = "created_at"
	}
	spec.Order = []gateway.Order{{Column: orderBy, Desc: !opts.Ascending}}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	page := opts.Page
	if page < 0 {
		page = 0
	}
	spec.Range = &gateway.Range{Offset: page * pageSize, Limit: pageSize}
	return spec
}

// Fetch returns one page of a store's orders plus the total count
// matching the filters.
func (s *Service) Fetch(ctx context.Context, storeID string, opts FetchOptions) ([]domain.Order, int64, error) {
	var rows []domain.Order
	total, err := s.gw.QueryCount(ctx, BuildOrderSpec(storeID, opts), &rows)
	if err != nil {
		zap.S().Errorf("fetch orders failed: %s", err.Error())
		return nil, 0, err
	}
	return rows, total, nil
}

// Details loads one order with its items, flattening the joined product
// name onto each item.
func (s *Service) Details(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	err := s.gw.QueryOne(ctx, gateway.Spec{
		Table:   "orders",
		Filters: []gateway.Filter{gateway.Eq("id", orderID)},
	}, &order)
	if err != nil {
		return nil, err
	}

	var items []domain.OrderItem
	err = s.gw.Query(ctx, gateway.Spec{
		Table:   "order_items",
		Selects: []string{"order_items.*", "products.name AS product_name"},
		Joins: []gateway.Join{
			{Clause: "LEFT JOIN products ON products.id = order_items.product_id"},
		},
		Filters: []gateway.Filter{gateway.Eq("order_id", orderID)},
	}, &items)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

// UpdateStatus sets the status label of a store's order. The store_id
// filter keeps one merchant from touching another store's orders; a
// scoped update matching nothing reports ErrNotFound.
func (s *Service) UpdateStatus(ctx context.Context, storeID, orderID, status string) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}
	affected, err := s.gw.Update(ctx, "orders",
		map[string]interface{}{"status": status, "updated_at": time.Now()},
		gateway.Eq("id", orderID), gateway.Eq("store_id", storeID))
	if err != nil {
		zap.S().Errorf("update order status failed: %s", err.Error())
		return nil, err
	}
	if affected == 0 {
		return nil, gateway.ErrNotFound
	}
	var order domain.Order
	if err := s.gw.QueryOne(ctx, gateway.Spec{
		Table:   "orders",
		Filters: []gateway.Filter{gateway.Eq("id", orderID), gateway.Eq("store_id", storeID)},
	}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Create inserts the order row for a store. Items are added separately
// via AddItems, mirroring the two-step sequence of the dashboard.
func (s *Service) Create(ctx context.Context, storeID string, order *domain.Order) error {
	order.ID = common.UUID()
	order.StoreID = storeID
	if order.OrderNumber == "" {
		order.OrderNumber = common.NextOrderNumber()
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	return s.gw.Insert(ctx, "orders", order)
}

// AddItems inserts order items in one call.
func (s *Service) AddItems(ctx context.Context, orderID string, items []domain.OrderItem) error {
	if len(items) == 0 {
		return ErrEmptyOrder
	}
	now := time.Now()
	for i := range items {
		items[i].ID = common.UUID()
		items[i].OrderID = orderID
		items[i].CreatedAt = now
	}
	return s.gw.Insert(ctx, "order_items", items)
}

// Delete removes a store's order and its items. Ownership is checked
// first so the unscoped order_items delete can never touch another
// store's rows.
func (s *Service) Delete(ctx context.Context, storeID, orderID string) error {
	var order domain.Order
	found, err := s.gw.QueryMaybeOne(ctx, gateway.Spec{
		Table:   "orders",
		Filters: []gateway.Filter{gateway.Eq("id", orderID), gateway.Eq("store_id", storeID)},
	}, &order)
	if err != nil {
		return err
	}
	if !found {
		return gateway.ErrNotFound
	}
	if _, err := s.gw.Delete(ctx, "order_items", gateway.Eq("order_id", orderID)); err != nil {
		return err
	}
	_, err = s.gw.Delete(ctx, "orders",
		gateway.Eq("id", orderID), gateway.Eq("store_id", storeID))
	return err
}

// Stats is the per-status order count fold of the dashboard home.
type Stats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Shipped    int `json:"shipped"`
	Delivered  int `json:"delivered"`
	Cancelled  int `json:"cancelled"`
}

// FoldStats counts statuses client-side from the fetched rows, exactly
// like the dashboard does.
func FoldStats(rows []domain.Order) Stats {
	st := Stats{Total: len(rows)}
	for _, o := range rows {
		switch o.Status {
		case domain.OrderStatusPending:
			st.Pending++
		case domain.OrderStatusProcessing:
			st.Processing++
		case domain.OrderStatusShipped:
			st.Shipped++
		case domain.OrderStatusDelivered:
			st.Delivered++
		case domain.OrderStatusCancelled:
			st.Cancelled++
		}
	}
	return st
}

// FetchStats loads all status labels of a store and folds them.
func (s *Service) FetchStats(ctx context.Context, storeID string) (Stats, error) {
	var rows []domain.Order
	err := s.gw.Query(ctx, gateway.Spec{
		Table:   "orders",
		Selects: []string{"orders.status"},
		Filters: []gateway.Filter{gateway.Eq("store_id", storeID)},
	}, &rows)
	if err != nil {
		return Stats{}, err
	}
	return FoldStats(rows), nil
}
