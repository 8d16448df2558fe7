package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"estatepulse/server/internal/models"
)

// OpenGorm opens the gorm handle used by the batch import path. The read path
// keeps using database/sql; gorm only serves the transactional upserts.
func OpenGorm(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}
	return db, nil
}

// UpsertProperties inserts the batch, replacing rows that collide on id.
// Runs inside the caller's transaction.
func UpsertProperties(tx *gorm.DB, batch []*models.PropertyRecord) error {
	if len(batch) == 0 {
		return nil
	}
	return tx.Table("properties").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&batch).Error
}
