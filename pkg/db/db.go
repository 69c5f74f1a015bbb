package db

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Open connects gorm using the dialector selected by configuration.
func Open(dialector gorm.Dialector, log *zap.Logger) (*gorm.DB, error) {
	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	log.Info("database connected", zap.String("dialect", dialector.Name()))
	return gdb, nil
}

// Module wires the gorm connection.
var Module = fx.Module("db",
	fx.Provide(Dialect),
	fx.Provide(Open),
)
