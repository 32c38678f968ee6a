package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"backoffice/internal/config"
	"backoffice/internal/models"
)

// Migrate brings the schema up to date: gorm creates the tables from the
// models, then the raw statements add what struct tags cannot express.
func Migrate(ctx context.Context, cfg config.DBConfig, log logrus.FieldLogger) error {
	db, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	db = db.WithContext(ctx)
	if err := db.AutoMigrate(
		&models.Restaurant{},
		&models.Category{},
		&models.InventoryItem{},
		&models.Table{},
	); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	migrations := []string{
		addVegTypeCheck,
		addPriceCheck,
		seedCategories,
	}
	for i, migration := range migrations {
		log.Debugf("running migration %d/%d", i+1, len(migrations))
		if err := db.Exec(migration).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	log.Info("all migrations completed successfully")
	return nil
}

const addVegTypeCheck = `
DO $$
BEGIN
  IF NOT EXISTS (
    SELECT 1 FROM information_schema.table_constraints
    WHERE constraint_name = 'inventory_is_veg_check' AND table_name = 'inventory'
  ) THEN
    ALTER TABLE inventory
    ADD CONSTRAINT inventory_is_veg_check CHECK (is_veg IN ('Veg', 'Non-Veg', 'Egg'));
  END IF;
END$$;
`

const addPriceCheck = `
DO $$
BEGIN
  IF NOT EXISTS (
    SELECT 1 FROM information_schema.table_constraints
    WHERE constraint_name = 'inventory_price_check' AND table_name = 'inventory'
  ) THEN
    ALTER TABLE inventory
    ADD CONSTRAINT inventory_price_check CHECK (price >= 0);
  END IF;
END$$;
`

const seedCategories = `
INSERT INTO categories (category_name)
SELECT name FROM (VALUES
  ('Starters'), ('Main Course'), ('Breads'), ('Rice'), ('Desserts'), ('Beverages')
) AS defaults(name)
WHERE NOT EXISTS (SELECT 1 FROM categories);
`
