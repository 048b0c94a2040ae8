// Package sqlite provides SQLite-backed persistence for the activity
// registry.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sqlitemigrate "github.com/Jafie/skills-getting-started-with-github-copilot/internal/platform/storage/sqlitemigrate"
	"github.com/Jafie/skills-getting-started-with-github-copilot/internal/services/activities/domain"
	"github.com/Jafie/skills-getting-started-with-github-copilot/internal/services/activities/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed activity storage.
type Store struct {
	sqlDB *sql.DB
}

// Open opens the activities SQLite store at the provided path, applies
// migrations, and resets the catalog to the seed.
//
// The registry starts every process from the seed roster, so any rows left
// over from a previous run are discarded here.
func Open(path string, seed []domain.Activity) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL&_pragma=foreign_keys(ON)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := ensureForeignKeysEnabled(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	if err := store.reseed(seed); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	return store, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// ListActivities returns the catalog in seed order with rosters in signup
// order.
func (s *Store) ListActivities(ctx context.Context) ([]domain.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT name, description, schedule, max_participants
FROM activities
ORDER BY rowid ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var activities []domain.Activity
	index := make(map[string]int)
	for rows.Next() {
		var activity domain.Activity
		if err := rows.Scan(&activity.Name, &activity.Description, &activity.Schedule, &activity.MaxParticipants); err != nil {
			return nil, fmt.Errorf("scan activity row: %w", err)
		}
		activity.Participants = []string{}
		index[activity.Name] = len(activities)
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity rows: %w", err)
	}

	participantRows, err := s.sqlDB.QueryContext(ctx, `
SELECT activity_name, email
FROM activity_participants
ORDER BY id ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer participantRows.Close()

	for participantRows.Next() {
		var activityName, email string
		if err := participantRows.Scan(&activityName, &email); err != nil {
			return nil, fmt.Errorf("scan participant row: %w", err)
		}
		if idx, ok := index[activityName]; ok {
			activities[idx].Participants = append(activities[idx].Participants, email)
		}
	}
	if err := participantRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participant rows: %w", err)
	}
	return activities, nil
}

// AddParticipant appends email to the named activity's roster. Duplicates
// accumulate; capacity is not enforced.
func (s *Store) AddParticipant(ctx context.Context, activityName, email string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	result, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO activity_participants (activity_name, email)
SELECT ?, ?
WHERE EXISTS (SELECT 1 FROM activities WHERE name = ?)
`, activityName, email, activityName)
	if err != nil {
		return fmt.Errorf("add participant: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("add participant rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

// RemoveParticipant deletes the earliest roster row matching email for the
// named activity.
func (s *Store) RemoveParticipant(ctx context.Context, activityName, email string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	var exists int
	err := s.sqlDB.QueryRowContext(ctx, `SELECT 1 FROM activities WHERE name = ?`, activityName).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrActivityNotFound
		}
		return fmt.Errorf("check activity: %w", err)
	}

	result, err := s.sqlDB.ExecContext(ctx, `
DELETE FROM activity_participants
WHERE id = (
    SELECT id FROM activity_participants
    WHERE activity_name = ? AND email = ?
    ORDER BY id ASC
    LIMIT 1
)
`, activityName, email)
	if err != nil {
		return fmt.Errorf("remove participant: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove participant rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrParticipantNotFound
	}
	return nil
}

// reseed replaces all catalog rows with the seed inside one transaction.
func (s *Store) reseed(seed []domain.Activity) error {
	tx, err := s.sqlDB.BeginTx(context.Background(), nil)
	if err != nil {
		return fmt.Errorf("begin seed write: %w", err)
	}
	rollbackWith := func(cause error) error {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("%w: rollback seed write: %v", cause, rollbackErr)
		}
		return cause
	}

	if _, err := tx.Exec(`DELETE FROM activity_participants`); err != nil {
		return rollbackWith(fmt.Errorf("clear participants: %w", err))
	}
	if _, err := tx.Exec(`DELETE FROM activities`); err != nil {
		return rollbackWith(fmt.Errorf("clear activities: %w", err))
	}
	for _, activity := range seed {
		if _, err := tx.Exec(`
INSERT INTO activities (name, description, schedule, max_participants)
VALUES (?, ?, ?, ?)
`, activity.Name, activity.Description, activity.Schedule, activity.MaxParticipants); err != nil {
			return rollbackWith(fmt.Errorf("insert activity %s: %w", activity.Name, err))
		}
		for _, email := range activity.Participants {
			if _, err := tx.Exec(`
INSERT INTO activity_participants (activity_name, email)
VALUES (?, ?)
`, activity.Name, email); err != nil {
				return rollbackWith(fmt.Errorf("insert participant for %s: %w", activity.Name, err))
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed write: %w", err)
	}
	return nil
}

func ensureForeignKeysEnabled(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("sqlite db is required")
	}
	var enabled int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		return fmt.Errorf("check sqlite foreign key pragma: %w", err)
	}
	if enabled != 1 {
		return fmt.Errorf("sqlite foreign keys are disabled")
	}
	return nil
}
