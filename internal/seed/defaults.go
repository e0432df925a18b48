package seed

import (
	"github.com/jmoiron/sqlx"

	"texbill/m/internal/logger"
)

// LoadDefaults inserts the stock reference data a fresh install starts
// with: the common dhara policies, the usual fabric materials and the GST
// slabs. Rows the user already has are left alone.
func LoadDefaults(db *sqlx.DB) {
	log := logger.WithComponent("seed")

	stmts := []string{
		`INSERT OR IGNORE INTO dharas (id, dhara_name, days) VALUES
            (1, 'Regular (35 days)', 35),
            (2, 'War to War (10 days)', 10),
            (3, 'Cash (0 days)', 0),
            (4, 'Extended (60 days)', 60);`,
		`INSERT OR IGNORE INTO materials (id, name, extra_detail) VALUES
            (1, 'Cotton', 'Premium quality cotton fabric'),
            (2, 'Polyester', 'Synthetic blend material'),
            (3, 'Silk', 'Natural silk fabric'),
            (4, 'Wool', 'Pure wool material');`,
		`INSERT OR IGNORE INTO taxes (id, name, percentage) VALUES
            (1, 'GST 5%', 5),
            (2, 'GST 12%', 12),
            (3, 'GST 18%', 18),
            (4, 'No Tax', 0);`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			log.Error().Err(err).Msg("unable to seed default reference data")
			return
		}
	}
	log.Debug().Msg("default reference data in place")
}
