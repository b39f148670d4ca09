package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/adornodavid/aybcosteo-sub000/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches that GORM
// cannot express (partial indexes, default rows).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates/updates the schema and applies post-migration patches.
// Also used by integration tests against a disposable database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Hotel{},
		&model.Restaurante{},
		&model.UnidadMedida{},
		&model.Usuario{},
		&model.Ingrediente{},
		&model.Receta{},
		&model.RecetaLinea{},
		&model.Platillo{},
		&model.PlatilloLinea{},
		&model.Menu{},
		&model.MenuPlatillo{},
		&model.Configuracion{},
		&model.Historico{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL/DML that AutoMigrate cannot fully
// handle on its own. Each statement uses IF NOT EXISTS / DO NOTHING semantics
// so re-running on an already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Trend queries scan one listing across a date range; the unique
		// day indexes lead with menu_id so this covering index pays off.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_historico_platillo_fecha') THEN
		    CREATE INDEX idx_historico_platillo_fecha
		        ON historico (platillo_id, fecha);
		  END IF;
		END $$`,
		// Default engine parameters. Values are starting points an
		// administrador overwrites through the API; the engine requires the
		// rows to exist.
		`INSERT INTO configuraciones (clave, valor, descripcion, updated_at)
		 VALUES ('factor_gastos', 0.5, 'Factor de gastos sobre costo de elaboracion', NOW())
		 ON CONFLICT (clave) DO NOTHING`,
		`INSERT INTO configuraciones (clave, valor, descripcion, updated_at)
		 VALUES ('divisor_precio', 0.3, 'Divisor para derivar precio sugerido', NOW())
		 ON CONFLICT (clave) DO NOTHING`,
		`INSERT INTO configuraciones (clave, valor, descripcion, updated_at)
		 VALUES ('iva', 0.16, 'Tasa de IVA sobre precio de venta', NOW())
		 ON CONFLICT (clave) DO NOTHING`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
