package app

import (
	"os"
	"runtime/debug"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"

	"github.com/rashedalhajeri/quickstore-builder/config"
	"github.com/rashedalhajeri/quickstore-builder/internal/adminapi"
	"github.com/rashedalhajeri/quickstore-builder/internal/categories"
	"github.com/rashedalhajeri/quickstore-builder/internal/domain"
	"github.com/rashedalhajeri/quickstore-builder/internal/gateway"
	"github.com/rashedalhajeri/quickstore-builder/internal/orders"
	"github.com/rashedalhajeri/quickstore-builder/internal/products"
	"github.com/rashedalhajeri/quickstore-builder/internal/sections"
	"github.com/rashedalhajeri/quickstore-builder/internal/session"
	"github.com/rashedalhajeri/quickstore-builder/internal/storefront"
	"github.com/rashedalhajeri/quickstore-builder/internal/stores"
	"github.com/rashedalhajeri/quickstore-builder/internal/webserver"
)

type Application struct {
	appConfig *config.AppConfig
	gormDB    *gorm.DB
	gw        gateway.Client
	bus       EventBus.Bus
	sched     *cron.Cron

	products   *products.Service
	orders     *orders.Service
	sections   *sections.Service
	categories *categories.Service
	stores     *stores.Service
	sessions   *session.Manager
}

// Ensure Application implements all provider interfaces.
var (
	_ DBProvider      = (*Application)(nil)
	_ GatewayProvider = (*Application)(nil)
	_ ConfigProvider  = (*Application)(nil)
	_ BusProvider     = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig { return a.appConfig }
func (a *Application) DB() *gorm.DB              { return a.gormDB }
func (a *Application) Gateway() gateway.Client   { return a.gw }
func (a *Application) Bus() EventBus.Bus         { return a.bus }

// OverrideDB replaces the application's database handle (used in tests).
func (a *Application) OverrideDB(db *gorm.DB) {
	a.gormDB = db
	a.gw = gateway.NewGormClient(db)
}

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}
		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}
	zap.ReplaceGlobals(logger)

	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	a.gormDB = getDatabase(cfg.Database)
	zap.S().Infof("database connection successful, type: %s", cfg.Database.Type)

	if err := a.MigrateDB(false); err != nil {
		zap.S().Errorf("database migration failed: %v", err)
	}

	a.gw = gateway.NewGormClient(a.gormDB)
	a.bus = EventBus.New()

	a.products = products.NewService(a.gw)
	a.orders = orders.NewService(a.gw)
	a.sections = sections.NewService(a.gw)
	a.categories = categories.NewService(a.gw)
	a.stores = stores.NewService(a.gw)
	a.sessions = session.NewManager(a.gw, a.bus,
		cfg.Web.Secret, time.Duration(cfg.Web.JwtExpH)*time.Hour)

	a.subscribeAuditEvents()

	go func() {
		time.Sleep(3 * time.Second)
		a.checkSettings()
	}()
}

// InitWeb builds the web server and registers the dashboard and
// storefront route sets.
func (a *Application) InitWeb() {
	webserver.Init(a.appConfig, a.sessions)
	adminapi.Init(&adminapi.Modules{
		Products:   a.products,
		Orders:     a.orders,
		Sections:   a.sections,
		Categories: a.categories,
		Stores:     a.stores,
		Sessions:   a.sessions,
	})
	storefront.Init(&storefront.Modules{
		Products:   a.products,
		Orders:     a.orders,
		Sections:   a.sections,
		Categories: a.categories,
		Stores:     a.stores,
		Checkout:   storefront.NewCheckout(a.products, a.orders, a.stores),
	})
}

func (a *Application) MigrateDB(track bool) (err error) {
	defer func() {
		if err1 := recover(); err1 != nil {
			if os.Getenv("GO_DEBUG_TRACE") != "" {
				debug.PrintStack()
			}
			err2, ok := err1.(error)
			if ok {
				err = err2
				zap.S().Error(err2.Error())
			}
		}
	}()
	if track {
		if err := a.gormDB.Debug().Migrator().AutoMigrate(domain.Tables...); err != nil {
			zap.S().Error(err)
		}
	} else {
		if err := a.gormDB.Migrator().AutoMigrate(domain.Tables...); err != nil {
			zap.S().Error(err)
		}
	}
	return nil
}

func (a *Application) DropAll() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
}

func (a *Application) InitDb() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
	err := a.gormDB.Migrator().AutoMigrate(domain.Tables...)
	if err != nil {
		zap.S().Error(err)
	}
}

// Scheduler returns the cron scheduler.
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// subscribeAuditEvents records sign-in/sign-out activity in the
// operation log.
func (a *Application) subscribeAuditEvents() {
	_ = a.bus.Subscribe(session.TopicSignedIn, func(sess session.Session) {
		a.gormDB.Create(&domain.SysOprLog{
			OprName:   sess.Email,
			OptAction: "sign_in",
			OptDesc:   "merchant signed in",
			OptTime:   time.Now(),
		})
	})
	_ = a.bus.Subscribe(session.TopicSignedOut, func(sess session.Session) {
		a.gormDB.Create(&domain.SysOprLog{
			OprName:   sess.Email,
			OptAction: "sign_out",
			OptDesc:   "merchant signed out",
			OptTime:   time.Now(),
		})
	})
}

// checkSettings seeds missing platform settings with their defaults.
func (a *Application) checkSettings() {
	defaults := []domain.SysConfig{
		{Sort: 1, Type: "platform", Name: "SupportedCountry", Value: stores.SupportedCountry, Remark: "Single market the platform ships for"},
		{Sort: 2, Type: "platform", Name: "SupportedCurrency", Value: stores.SupportedCurrency, Remark: "Currency stores are created with"},
		{Sort: 3, Type: "orders", Name: "OprLogDays", Value: "365", Remark: "Days to keep operation log rows"},
		{Sort: 4, Type: "orders", Name: "CancelledOrderDays", Value: "180", Remark: "Days to keep cancelled orders"},
	}
	for _, item := range defaults {
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", item.Type, item.Name).
			Count(&count)
		if count == 0 {
			item.CreatedAt = time.Now()
			item.UpdatedAt = time.Now()
			a.gormDB.Create(&item)
			zap.S().Infof("initialized config %s.%s=%s", item.Type, item.Name, item.Value)
		}
	}
}

// Release releases application resources.
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	_ = zap.L().Sync()
}
