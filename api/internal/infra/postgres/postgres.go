package postgres

import (
	"fmt"

	"walletwatch/api/internal/config"
	"walletwatch/api/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Tables lists every model owned by the service, in creation order.
var Tables = []any{&domain.Wallets{}, &domain.Transactions{}, &domain.Alerts{}, &domain.ApiKeys{}}

func Init(config *config.Config) *gorm.DB {
	db, err := Open(config.Postgres.Dsn)
	if err != nil {
		panic("Gorm error: " + err.Error())
	}

	if err := Migrate(db); err != nil {
		panic("Auto migrate error: " + err.Error())
	}

	return db
}

func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Tables...)
}

func DropTables(db *gorm.DB) error {
	return db.Migrator().DropTable(Tables...)
}
