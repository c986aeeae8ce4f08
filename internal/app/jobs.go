package app

import (
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/rashedalhajeri/quickstore-builder/internal/domain"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// recomputeWorkers bounds the per-store recompute fan-out.
const recomputeWorkers = 8

// StartBackgroundJobs schedules the maintenance jobs: the nightly
// sales_count recompute and the daily operation-log cleanup.
func (a *Application) StartBackgroundJobs() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedRecomputeSalesCounts()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedClearExpireData()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedRecomputeSalesCounts rebuilds products.sales_count per store from
// the order items of non-cancelled orders. Stores are processed through
// a bounded worker pool.
func (a *Application) SchedRecomputeSalesCounts() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	var storeIDs []string
	if err := a.gormDB.Model(&domain.Store{}).Pluck("id", &storeIDs).Error; err != nil {
		zap.S().Errorf("sales recompute store scan failed: %s", err.Error())
		return
	}

	pool, err := ants.NewPool(recomputeWorkers)
	if err != nil {
		zap.S().Errorf("sales recompute pool init failed: %s", err.Error())
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, storeID := range storeIDs {
		storeID := storeID
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			a.recomputeStoreSales(storeID)
		})
		if submitErr != nil {
			wg.Done()
			zap.S().Errorf("sales recompute submit failed: %s", submitErr.Error())
		}
	}
	wg.Wait()
	zap.S().Infof("sales recompute finished for %d stores", len(storeIDs))
}

func (a *Application) recomputeStoreSales(storeID string) {
	err := a.gormDB.Exec(`
		UPDATE products SET sales_count = COALESCE(sold.qty, 0)
		FROM (
			SELECT oi.product_id, SUM(oi.quantity) AS qty
			FROM order_items oi
			JOIN orders o ON o.id = oi.order_id
			WHERE o.store_id = ? AND o.status <> ?
			GROUP BY oi.product_id
		) AS sold
		WHERE products.id = sold.product_id AND products.store_id = ?`,
		storeID, domain.OrderStatusCancelled, storeID).Error
	if err != nil {
		zap.S().Errorf("sales recompute for store %s failed: %s", storeID, err.Error())
	}
}

// SchedClearExpireData removes operation-log rows and cancelled orders
// older than their configured retention windows.
func (a *Application) SchedClearExpireData() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	logDays := a.retentionDays("OprLogDays", 365)
	a.gormDB.
		Where("opt_time < ?", time.Now().Add(-time.Hour*24*time.Duration(logDays))).
		Delete(&domain.SysOprLog{})

	orderDays := a.retentionDays("CancelledOrderDays", 180)
	cutoff := time.Now().Add(-time.Hour * 24 * time.Duration(orderDays))
	var expired []string
	err := a.gormDB.Model(&domain.Order{}).
		Where("status = ? and created_at < ?", domain.OrderStatusCancelled, cutoff).
		Pluck("id", &expired).Error
	if err != nil {
		zap.S().Errorf("expired order scan failed: %s", err.Error())
		return
	}
	if len(expired) == 0 {
		return
	}
	a.gormDB.Where("order_id in ?", expired).Delete(&domain.OrderItem{})
	a.gormDB.Where("id in ?", expired).Delete(&domain.Order{})
	zap.S().Infof("removed %d expired cancelled orders", len(expired))
}

func (a *Application) retentionDays(name string, fallback int) int {
	var setting domain.SysConfig
	err := a.gormDB.Where("type = ? and name = ?", "orders", name).
		First(&setting).Error
	if err == nil {
		if v := cast.ToInt(setting.Value); v > 0 {
			return v
		}
	}
	return fallback
}
