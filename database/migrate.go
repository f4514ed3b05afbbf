package database

import (
	"fmt"

	"firmanager-backend/models"

	"gorm.io/gorm"
)

// MigrateTenantSchema applies (idempotent) schema migrations for a single
// tenant schema. It pins search_path to the tenant and performs:
// - AutoMigrate (tables/columns)
// - Money/rate column types (NUMERIC(12,2))
// - Indexes (unique anleggsnr, order date lookups)
// - Basic CHECK constraints on rates and hours
// - Idempotency keys table + unique index
func MigrateTenantSchema(schema string) error {
	if schema == "" {
		return fmt.Errorf("schema name is empty")
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		// Pin the tenant schema for this transaction
		if err := tx.Exec(`SET search_path = "` + schema + `", public`).Error; err != nil {
			return fmt.Errorf("set search_path failed: %w", err)
		}

		// --- AutoMigrate tables/columns/index tags (non-destructive) ---
		if err := tx.AutoMigrate(
			&models.Customer{},
			&models.Employee{},
			&models.Service{},
			&models.SupplierRate{},
			&models.WorkOrder{},
			&models.InternalOrder{},
			&models.Product{},
			&models.Route{},
			&models.Payout{},
			&models.RiskAssessment{},
			&models.Incident{},
			&models.Training{},
			&models.Equipment{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("tenant automigrate failed: %w", err)
		}

		// --- Enforce money/rate columns as NUMERIC(12,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE employees      ALTER COLUMN internal_rate        TYPE numeric(12,2)`,
			`ALTER TABLE employees      ALTER COLUMN invoice_rate         TYPE numeric(12,2)`,
			`ALTER TABLE employees      ALTER COLUMN pa_service_rate      TYPE numeric(12,2)`,
			`ALTER TABLE employees      ALTER COLUMN pa_installation_rate TYPE numeric(12,2)`,
			`ALTER TABLE employees      ALTER COLUMN pa_hourly_rate       TYPE numeric(12,2)`,
			`ALTER TABLE employees      ALTER COLUMN pa_drive_rate        TYPE numeric(12,2)`,
			`ALTER TABLE employees      ALTER COLUMN pa_km_rate           TYPE numeric(12,2)`,
			`ALTER TABLE services       ALTER COLUMN fixed_price          TYPE numeric(12,2)`,
			`ALTER TABLE services       ALTER COLUMN extra_tier1          TYPE numeric(12,2)`,
			`ALTER TABLE services       ALTER COLUMN extra_tier2          TYPE numeric(12,2)`,
			`ALTER TABLE services       ALTER COLUMN extra_tier3          TYPE numeric(12,2)`,
			`ALTER TABLE services       ALTER COLUMN extra_tier4          TYPE numeric(12,2)`,
			`ALTER TABLE services       ALTER COLUMN drive_time_rate      TYPE numeric(12,2)`,
			`ALTER TABLE services       ALTER COLUMN km_rate              TYPE numeric(12,2)`,
			`ALTER TABLE supplier_rates ALTER COLUMN work_hour_rate       TYPE numeric(12,2)`,
			`ALTER TABLE supplier_rates ALTER COLUMN drive_hour_rate      TYPE numeric(12,2)`,
			`ALTER TABLE supplier_rates ALTER COLUMN km_rate              TYPE numeric(12,2)`,
			`ALTER TABLE products       ALTER COLUMN customer_price       TYPE numeric(12,2)`,
			`ALTER TABLE payouts        ALTER COLUMN amount               TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Composite / helpful indexes (idempotent) ---
		indexes := []string{
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_customers_anleggsnr ON customers (anleggsnr)`,
			`CREATE INDEX IF NOT EXISTS idx_customers_postal_code ON customers (postal_code)`,
			`CREATE INDEX IF NOT EXISTS idx_work_orders_date ON work_orders (date)`,
			`CREATE INDEX IF NOT EXISTS idx_work_orders_employee_date ON work_orders (employee_id, date)`,
			`CREATE INDEX IF NOT EXISTS idx_internal_orders_employee_date ON internal_orders (employee_id, date)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			// Non-negative employee rates
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'employees'::regclass
					  AND conname  = 'chk_employees_rates_nonneg'
				) THEN
					ALTER TABLE employees
					ADD CONSTRAINT chk_employees_rates_nonneg
					CHECK (
						internal_rate >= 0 AND invoice_rate >= 0 AND
						pa_service_rate >= 0 AND pa_installation_rate >= 0 AND
						pa_hourly_rate >= 0 AND pa_drive_rate >= 0 AND pa_km_rate >= 0
					);
				END IF;
			END $$;`,
			// Non-negative work order quantities
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'work_orders'::regclass
					  AND conname  = 'chk_work_orders_quantities_nonneg'
				) THEN
					ALTER TABLE work_orders
					ADD CONSTRAINT chk_work_orders_quantities_nonneg
					CHECK (work_hours >= 0 AND drive_hours >= 0 AND driven_km >= 0);
				END IF;
			END $$;`,
			// Non-negative internal hours
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'internal_orders'::regclass
					  AND conname  = 'chk_internal_orders_hours_nonneg'
				) THEN
					ALTER TABLE internal_orders
					ADD CONSTRAINT chk_internal_orders_hours_nonneg
					CHECK (work_hours >= 0);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
