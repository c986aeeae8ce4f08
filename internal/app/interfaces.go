package app

import (
	"github.com/asaskevich/EventBus"
	"gorm.io/gorm"

	"github.com/rashedalhajeri/quickstore-builder/config"
	"github.com/rashedalhajeri/quickstore-builder/internal/gateway"
)

// DBProvider exposes the raw database handle for migration and jobs.
type DBProvider interface {
	DB() *gorm.DB
}

// GatewayProvider exposes the query gateway the services run on.
type GatewayProvider interface {
	Gateway() gateway.Client
}

// ConfigProvider exposes the loaded application configuration.
type ConfigProvider interface {
	Config() *config.AppConfig
}

// BusProvider exposes the in-process event bus.
type BusProvider interface {
	Bus() EventBus.Bus
}
