package database

import (
	"fmt"

	"gorm.io/gorm"
)

// checks backs the positive-value rules with table constraints so rows
// written outside the services still obey them.
var checks = []struct {
	table, name, expr string
}{
	{"areas", "chk_areas_coords", "coord_x > 0 AND coord_y > 0"},
	{"areas", "chk_areas_base_price", "base_price > 0"},
	{"seats", "chk_seats_position", "seat_row > 0 AND number > 0"},
	{"event_seats", "chk_event_seats_position", "seat_row > 0 AND number > 0"},
	{"event_areas", "chk_event_areas_price", "price > 0"},
	{"event_seats", "chk_event_seats_state", "state IN ('Free', 'Occupied')"},
	{"events", "chk_events_window", "time_start < time_end"},
	{"users", "chk_users_balance", "balance >= 0"},
	{"tickets", "chk_tickets_price", "price > 0"},
}

// Migrate creates or updates the tables for models and adds check constraints
// for the ticketing tables that exist.
func Migrate(db *gorm.DB, models ...any) error {
	if len(models) == 0 {
		return nil
	}
	if err := db.AutoMigrate(models...); err != nil {
		return err
	}
	return MigrateConstraints(db)
}

// MigrateConstraints adds the check constraints that gorm tags cannot express.
func MigrateConstraints(db *gorm.DB) error {
	for _, c := range checks {
		if !db.Migrator().HasTable(c.table) {
			continue
		}
		err := db.Exec(fmt.Sprintf(`
			DO $$ BEGIN
				ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s);
			EXCEPTION WHEN duplicate_object THEN NULL;
			END $$;`, c.table, c.name, c.expr)).Error
		if err != nil {
			return fmt.Errorf("add constraint %s: %w", c.name, err)
		}
	}
	return nil
}
