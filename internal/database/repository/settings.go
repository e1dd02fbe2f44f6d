package repository

import (
	"context"
	"database/sql"
)

// settingsID is the fixed key of the singleton settings row. The table's
// CHECK constraint makes a second row impossible.
const settingsID = 1

// SettingsRepo handles the singleton settings row.
type SettingsRepo struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{db: db} }

// Ensure inserts the default settings row if it is missing. It is idempotent
// and safe to run on every startup.
func (r *SettingsRepo) Ensure(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (id, saved_cents, salary_cents) VALUES (?, 0, 0)`,
		settingsID)
	return storageErr("ensure settings", err)
}

// Get reads the settings row.
func (r *SettingsRepo) Get(ctx context.Context) (Settings, error) {
	var s Settings
	err := r.db.QueryRowContext(ctx,
		`SELECT saved_cents, salary_cents FROM settings WHERE id = ?`, settingsID).
		Scan(&s.SavedCents, &s.SalaryCents)
	if err != nil {
		return Settings{}, storageErr("get settings", err)
	}
	return s, nil
}

// SavedAmount returns the user-declared amount set aside toward goals.
func (r *SettingsRepo) SavedAmount(ctx context.Context) (int64, error) {
	s, err := r.Get(ctx)
	return s.SavedCents, err
}

// SetSavedAmount updates the saved amount.
func (r *SettingsRepo) SetSavedAmount(ctx context.Context, cents int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE settings SET saved_cents = ? WHERE id = ?`, cents, settingsID)
	return storageErr("set saved amount", err)
}

// Salary returns the monthly salary.
func (r *SettingsRepo) Salary(ctx context.Context) (int64, error) {
	s, err := r.Get(ctx)
	return s.SalaryCents, err
}

// SetSalary updates the salary.
func (r *SettingsRepo) SetSalary(ctx context.Context, cents int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE settings SET salary_cents = ? WHERE id = ?`, cents, settingsID)
	return storageErr("set salary", err)
}
