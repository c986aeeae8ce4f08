package products

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rashedalhajeri/quickstore-builder/internal/domain"
	"github.com/rashedalhajeri/quickstore-builder/internal/gateway"
)

// BulkResult aggregates a per-id fan-out: which ids succeeded, which
// failed, and the first error seen. Partial success is never rolled
// back; already-applied updates stay applied.
type BulkResult struct {
	SucceededIDs []string
	FailedIDs    []string
	Err          error
}

func (r BulkResult) OK() bool { return r.Err == nil && len(r.FailedIDs) == 0 }

// fanOut dispatches apply once per id, all concurrently, and folds the
// outcomes. Selection sets come from a paginated UI and stay small, so
// there is no concurrency cap here; batch jobs use a worker pool instead.
func (s *Service) fanOut(ctx context.Context, ids []string, apply func(ctx context.Context, id string) error) BulkResult {
	var (
		mu     sync.Mutex
		result BulkResult
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			err := apply(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.FailedIDs = append(result.FailedIDs, id)
				if result.Err == nil {
					result.Err = err
				}
				return nil
			}
			result.SucceededIDs = append(result.SucceededIDs, id)
			return nil
		})
	}
	_ = g.Wait()
	sort.Strings(result.SucceededIDs)
	sort.Strings(result.FailedIDs)
	return result
}

// SetActiveEach is the dashboard bulk activate/deactivate: one update
// request per selected id, maximum concurrency, aggregated result.
// Every update carries the store scope, so foreign ids fail instead of
// touching another store's rows.
func (s *Service) SetActiveEach(ctx context.Context, storeID string, ids []string, active bool) BulkResult {
	return s.fanOut(ctx, ids, func(ctx context.Context, id string) error {
		_, err := s.Activate(ctx, storeID, id, active)
		return err
	})
}

// SetArchivedEach is the per-id fan-out counterpart of BulkArchive.
func (s *Service) SetArchivedEach(ctx context.Context, storeID string, ids []string, archived bool) BulkResult {
	return s.fanOut(ctx, ids, func(ctx context.Context, id string) error {
		_, err := s.Archive(ctx, storeID, id, archived)
		return err
	})
}

// ChangeCategoryEach moves every selected product to categoryID (nil
// clears the category), one request per id.
func (s *Service) ChangeCategoryEach(ctx context.Context, storeID string, ids []string, categoryID *string) BulkResult {
	return s.fanOut(ctx, ids, func(ctx context.Context, id string) error {
		_, err := s.Update(ctx, storeID, id, map[string]interface{}{"category_id": categoryID})
		return err
	})
}

// BulkDeleteResult reports a guarded bulk delete: unreferenced ids are
// hard-deleted, referenced ids are archived instead.
type BulkDeleteResult struct {
	Success       bool
	DeletedCount  int
	ArchivedCount int
	Err           error
}

// BulkDelete deletes the selected products unless they are referenced by
// order items; referenced ids are archived (is_archived = true) instead.
// When every id is referenced the result is a failure with
// ErrAllLinkedToOrders, yet the archive mutation is still applied — the
// dashboard has always behaved this way and callers depend on the
// archived rows disappearing from active views.
func (s *Service) BulkDelete(ctx context.Context, storeID string, ids []string) BulkDeleteResult {
	var refs []domain.OrderItem
	err := s.gw.Query(ctx, gateway.Spec{
		Table:   "order_items",
		Selects: []string{"order_items.product_id"},
		Filters: []gateway.Filter{gateway.In("product_id", ids)},
	}, &refs)
	if err != nil {
		zap.S().Errorf("bulk delete reference check failed: %s", err.Error())
		return BulkDeleteResult{Err: err}
	}

	referenced := map[string]bool{}
	for _, item := range refs {
		referenced[item.ProductID] = true
	}

	var toDelete, toArchive []string
	for _, id := range ids {
		if referenced[id] {
			toArchive = append(toArchive, id)
		} else {
			toDelete = append(toDelete, id)
		}
	}

	result := BulkDeleteResult{}

	if len(toArchive) > 0 {
		_, archiveErr := s.gw.Update(ctx, "products",
			map[string]interface{}{"is_archived": true, "updated_at": time.Now()},
			gateway.In("id", toArchive), gateway.Eq("store_id", storeID))
		if archiveErr != nil {
			zap.S().Errorf("bulk delete archive step failed: %s", archiveErr.Error())
			result.Err = archiveErr
		} else {
			result.ArchivedCount = len(toArchive)
		}
	}

	if len(toDelete) == 0 {
		result.Success = false
		if result.Err == nil {
			result.Err = ErrAllLinkedToOrders
		}
		return result
	}

	if _, delErr := s.gw.Delete(ctx, "products",
		gateway.In("id", toDelete), gateway.Eq("store_id", storeID)); delErr != nil {
		zap.S().Errorf("bulk delete failed: %s", delErr.Error())
		if result.Err == nil {
			result.Err = delErr
		}
	} else {
		result.DeletedCount = len(toDelete)
	}

	result.Success = result.Err == nil
	return result
}
