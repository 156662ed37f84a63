package postgres

import (
	"etching/internal/adapters/out/postgres/orderrepo"
	"etching/internal/adapters/out/postgres/quoterepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the tables of every repository.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&orderrepo.OrderDTO{}, &quoterepo.QuoteDTO{})
}
