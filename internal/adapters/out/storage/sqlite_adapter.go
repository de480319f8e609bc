package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/suchimauz/his-appointment-scheduler/internal/config"
	"github.com/suchimauz/his-appointment-scheduler/internal/core/domain"
	"github.com/suchimauz/his-appointment-scheduler/internal/core/ports/out"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id        TEXT PRIMARY KEY,
	full_name TEXT NOT NULL,
	role      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS appointments (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	note       TEXT NOT NULL DEFAULT '',
	date       TEXT NOT NULL,
	start_time TEXT NOT NULL,
	end_time   TEXT NOT NULL,
	completed  INTEGER NOT NULL DEFAULT 0,
	doctor_id  TEXT NOT NULL,
	patient_id TEXT
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_doctor_start
	ON appointments (doctor_id, start_time);
`

// SqliteAdapter - адаптер хранилища на sqlite.
// Уникальный индекс (doctor_id, start_time) страхует инвариант
// коллизий на уровне базы
type SqliteAdapter struct {
	db     *sql.DB
	logger out.LoggerPort
}

func NewSqliteAdapter(cfg *config.Config, logger out.LoggerPort) (*SqliteAdapter, error) {
	db, err := sql.Open("sqlite", cfg.Storage.SqlitePath)
	if err != nil {
		logger.Error("storage.open_failed", out.LogFields{
			"path":  cfg.Storage.SqlitePath,
			"error": err.Error(),
		})
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		logger.Error("storage.migrate_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	logger.Info("storage.opened", out.LogFields{
		"path": cfg.Storage.SqlitePath,
	})

	return &SqliteAdapter{
		db:     db,
		logger: logger.WithModule("SqliteAdapter"),
	}, nil
}

func (a *SqliteAdapter) Close() error {
	return a.db.Close()
}

func (a *SqliteAdapter) getUser(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	row := a.db.QueryRowContext(ctx,
		`SELECT id, full_name, role FROM users WHERE id = ? AND role = ?`, id, string(role))

	var user domain.User
	if err := row.Scan(&user.ID, &user.FullName, &user.Role); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("storage.user.query_failed: %w", err)
	}

	return &user, nil
}

func (a *SqliteAdapter) GetDoctor(ctx context.Context, id string) (*domain.User, error) {
	return a.getUser(ctx, id, domain.RoleDoctor)
}

func (a *SqliteAdapter) GetPatient(ctx context.Context, id string) (*domain.User, error) {
	return a.getUser(ctx, id, domain.RolePatient)
}

func (a *SqliteAdapter) CreateUser(ctx context.Context, user domain.User) error {
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO users (id, full_name, role) VALUES (?, ?, ?)`,
		user.ID, user.FullName, string(user.Role))
	if err != nil {
		return fmt.Errorf("storage.user.insert_failed: %w", err)
	}
	return nil
}

func (a *SqliteAdapter) DeleteUser(ctx context.Context, id string) error {
	_, err := a.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("storage.user.delete_failed: %w", err)
	}
	return nil
}
