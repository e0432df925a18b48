package migrations

import (
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Run creates the database schema required for the billing backend.
func Run(db *sqlx.DB) {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            username TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            role TEXT NOT NULL,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS buyers (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            address TEXT,
            contact_number TEXT NOT NULL,
            gst_number TEXT
        );`,
		`CREATE TABLE IF NOT EXISTS dalals (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            contact_number TEXT NOT NULL,
            address TEXT
        );`,
		`CREATE TABLE IF NOT EXISTS materials (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            extra_detail TEXT,
            hsn_code TEXT
        );`,
		`CREATE TABLE IF NOT EXISTS dharas (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            dhara_name TEXT NOT NULL,
            days INTEGER NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS taxes (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            percentage REAL NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS bills (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            bill_no INTEGER NOT NULL,
            date TEXT NOT NULL, -- ISO YYYY-MM-DD; a DATE decltype scans back as time.Time
            buyer_id INTEGER NOT NULL,
            dalal_id INTEGER NOT NULL,
            material_id INTEGER NOT NULL,
            dhara_id INTEGER NOT NULL,
            tax_id INTEGER NOT NULL,
            meter REAL NOT NULL,
            price_rate REAL NOT NULL,
            chalan_no TEXT NOT NULL,
            taka_count INTEGER NOT NULL,
            base_amount REAL NOT NULL,
            tax_amount REAL NOT NULL,
            payment_received BOOLEAN DEFAULT 0,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            FOREIGN KEY (buyer_id) REFERENCES buyers(id),
            FOREIGN KEY (dalal_id) REFERENCES dalals(id),
            FOREIGN KEY (material_id) REFERENCES materials(id),
            FOREIGN KEY (dhara_id) REFERENCES dharas(id),
            FOREIGN KEY (tax_id) REFERENCES taxes(id)
        );`,
		`CREATE TABLE IF NOT EXISTS company (
            id INTEGER PRIMARY KEY CHECK (id = 1),
            name TEXT NOT NULL,
            tagline TEXT,
            address TEXT NOT NULL,
            contact TEXT NOT NULL,
            gst TEXT NOT NULL,
            pan TEXT NOT NULL,
            business_type TEXT NOT NULL,
            bank_name TEXT NOT NULL,
            account_no TEXT NOT NULL,
            ifsc TEXT NOT NULL,
            branch TEXT NOT NULL,
            terms_conditions TEXT
        );`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
	}
}
