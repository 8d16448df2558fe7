package database

import "fmt"

func (d *Database) RunMigrations() error {
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS properties (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			address TEXT,
			property_type TEXT,
			total_units INTEGER DEFAULT 0,
			occupied_units INTEGER DEFAULT 0,
			occupancy_rate REAL,
			rental_income REAL DEFAULT 0,
			asset_value REAL DEFAULT 0,
			esg_score REAL DEFAULT 0,
			city TEXT,
			latitude REAL,
			longitude REAL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create properties table: %w", err)
	}

	_, err = d.db.Exec(`
		CREATE TABLE IF NOT EXISTS tenants (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT,
			property_id INTEGER NOT NULL REFERENCES properties(id),
			lease_start DATE,
			lease_end DATE,
			monthly_rent REAL DEFAULT 0,
			payment_score REAL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create tenants table: %w", err)
	}

	_, err = d.db.Exec(`
		CREATE TABLE IF NOT EXISTS leases (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			lease_number TEXT UNIQUE,
			tenant_id INTEGER NOT NULL REFERENCES tenants(id),
			property_id INTEGER NOT NULL REFERENCES properties(id),
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			monthly_rent REAL NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'ACTIVE',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			CHECK (end_date > start_date)
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create leases table: %w", err)
	}

	_, err = d.db.Exec(`
		CREATE TABLE IF NOT EXISTS maintenance_requests (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			property_id INTEGER NOT NULL REFERENCES properties(id),
			status TEXT NOT NULL DEFAULT 'PENDING',
			priority TEXT NOT NULL DEFAULT 'MEDIUM',
			estimated_cost REAL,
			actual_cost REAL,
			scheduled_date TIMESTAMP,
			completed_date TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create maintenance_requests table: %w", err)
	}

	_, err = d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_properties_city ON properties(city);
	`)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_leases_property ON leases(property_id);
	`)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_maintenance_property ON maintenance_requests(property_id);
	`)
	if err != nil {
		return err
	}

	return nil
}
