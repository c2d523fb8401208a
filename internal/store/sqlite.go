package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	_ "modernc.org/sqlite"

	"github.com/trialviz/axisgoat/internal/axis"
	"github.com/trialviz/axisgoat/internal/metadata"
)

var ErrNotFound = errors.New("not found")

type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS studies (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT UNIQUE NOT NULL,
    ongoing INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL DEFAULT (unixepoch()),
    updated_at INTEGER NOT NULL DEFAULT (unixepoch())
);

CREATE INDEX IF NOT EXISTS idx_studies_name ON studies(name);

CREATE TABLE IF NOT EXISTS view_metadata (
    study_name TEXT NOT NULL,
    view TEXT NOT NULL,
    document TEXT NOT NULL,
    PRIMARY KEY (study_name, view),
    FOREIGN KEY (study_name) REFERENCES studies(name)
);
`

func Open(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Apply schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveStudy stores doc, replacing any metadata previously imported for the
// same study.
func (s *SQLiteStore) SaveStudy(ctx context.Context, doc *metadata.Document) (*Study, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO studies (name, ongoing, created_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET ongoing = excluded.ongoing, updated_at = excluded.updated_at`,
		doc.Study, doc.Ongoing, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert study: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM view_metadata WHERE study_name = ?`, doc.Study); err != nil {
		return nil, fmt.Errorf("failed to clear view metadata: %w", err)
	}

	for view, raw := range doc.Raw {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO view_metadata (study_name, view, document) VALUES (?, ?, ?)`,
			doc.Study, view.String(), raw,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert metadata for view %s: %w", view, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit study: %w", err)
	}

	return s.GetStudy(ctx, doc.Study)
}

func (s *SQLiteStore) GetStudy(ctx context.Context, name string) (*Study, error) {
	var study Study
	var createdAt, updatedAt int64

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, ongoing, created_at, updated_at FROM studies WHERE name = ?`, name,
	).Scan(&study.ID, &study.Name, &study.Ongoing, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get study: %w", err)
	}

	study.CreatedAt = time.Unix(createdAt, 0)
	study.UpdatedAt = time.Unix(updatedAt, 0)

	if study.Views, err = s.studyViews(ctx, name); err != nil {
		return nil, err
	}

	return &study, nil
}

func (s *SQLiteStore) ListStudies(ctx context.Context) ([]*Study, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, ongoing, created_at, updated_at FROM studies ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list studies: %w", err)
	}
	defer rows.Close()

	var studies []*Study
	for rows.Next() {
		var study Study
		var createdAt, updatedAt int64

		if err := rows.Scan(&study.ID, &study.Name, &study.Ongoing, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan study: %w", err)
		}

		study.CreatedAt = time.Unix(createdAt, 0)
		study.UpdatedAt = time.Unix(updatedAt, 0)
		studies = append(studies, &study)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list studies: %w", err)
	}
	rows.Close()

	for _, study := range studies {
		if study.Views, err = s.studyViews(ctx, study.Name); err != nil {
			return nil, err
		}
	}

	return studies, nil
}

// DeleteStudy removes a study and its view metadata in one transaction.
func (s *SQLiteStore) DeleteStudy(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM view_metadata WHERE study_name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete view metadata: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM studies WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete study: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

// GetViewMetadata returns the parsed metadata of one view. A study without
// metadata for view yields ErrNotFound.
func (s *SQLiteStore) GetViewMetadata(ctx context.Context, study string, view axis.ViewID) (metadata.View, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM view_metadata WHERE study_name = ? AND view = ?`, study, view.String(),
	).Scan(&doc)

	if err == sql.ErrNoRows {
		return metadata.View{}, ErrNotFound
	}
	if err != nil {
		return metadata.View{}, fmt.Errorf("failed to get view metadata: %w", err)
	}

	v, err := metadata.ParseView([]byte(doc))
	if err != nil {
		return metadata.View{}, fmt.Errorf("failed to parse stored metadata for %s/%s: %w", study, view, err)
	}
	return v, nil
}

func (s *SQLiteStore) studyViews(ctx context.Context, name string) ([]axis.ViewID, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT view FROM view_metadata WHERE study_name = ?`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to list views: %w", err)
	}
	defer rows.Close()

	var views []axis.ViewID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan view: %w", err)
		}
		view, err := axis.ParseViewID(raw)
		if err != nil {
			// Views dropped from the enum since the import are skipped.
			continue
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list views: %w", err)
	}

	slices.Sort(views)
	return views, nil
}

var _ Store = (*SQLiteStore)(nil)
