package database

import (
	"fmt"
	"myFashionHub/domain"
	"myFashionHub/pkg/config"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitPostgres opens the connection pool. TranslateError is required:
// the bag and wishlist merge protocols branch on gorm.ErrDuplicatedKey
// when the unique index rejects a concurrent insert.
func InitPostgres(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// Migrate keeps the schema in sync with the domain models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Product{},
		&domain.Category{},
		&domain.CategoryProduct{},
		&domain.BagItem{},
		&domain.WishlistItem{},
		&domain.BrowsingHistory{},
		&domain.DeviceToken{},
		&domain.Order{},
		&domain.OrderItem{},
		&domain.Transaction{},
		&domain.PaymentMethod{},
	)
}
