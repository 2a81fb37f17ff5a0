package results

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sync"

	_ "modernc.org/sqlite"
)

// Store persists simulation runs to SQLite. Undefined values are stored as
// NULL and read back as NaN.
type Store struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

// NewStore creates a store for the given database path. Use ":memory:" for
// an ephemeral database.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Init opens the database and creates the schema if needed.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("results: sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		);
		CREATE TABLE IF NOT EXISTS trials (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			trial_index INTEGER NOT NULL,
			plants INTEGER NOT NULL,
			animals INTEGER NOT NULL,
			diversity INTEGER NOT NULL,
			target_connectance REAL NOT NULL,
			realized_connectance REAL NOT NULL,
			nestedness REAL,
			modularity REAL,
			resilience_mutualistic REAL,
			resilience_antagonistic REAL,
			PRIMARY KEY (run_id, trial_index)
		);
	`)
	return err
}

// SaveRun stores a whole table under a run name in one transaction.
func (s *Store) SaveRun(ctx context.Context, name string, table *Table) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `INSERT INTO runs (name) VALUES (?)`, name)
	if err != nil {
		return fmt.Errorf("results: insert run %q: %w", name, err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trials (
			run_id, trial_index, plants, animals, diversity,
			target_connectance, realized_connectance,
			nestedness, modularity, resilience_mutualistic, resilience_antagonistic
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, trial := range table.Trials() {
		_, err := stmt.ExecContext(ctx,
			runID, i, trial.Plants, trial.Animals, trial.Diversity,
			trial.TargetConnectance, trial.RealizedConnectance,
			nullable(trial.Nestedness), nullable(trial.Modularity),
			nullable(trial.ResilienceMutualistic), nullable(trial.ResilienceAntagonistic),
		)
		if err != nil {
			return fmt.Errorf("results: insert trial %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// LoadRun reads a previously saved table back in trial order.
func (s *Store) LoadRun(ctx context.Context, name string) (*Table, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	var runID int64
	err = db.QueryRowContext(ctx, `SELECT id FROM runs WHERE name = ?`, name).Scan(&runID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("results: run %q not found", name)
		}
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT plants, animals, diversity,
		       target_connectance, realized_connectance,
		       nestedness, modularity, resilience_mutualistic, resilience_antagonistic
		FROM trials WHERE run_id = ? ORDER BY trial_index
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trials []Trial
	for rows.Next() {
		var trial Trial
		var nest, mod, mut, ant sql.NullFloat64
		err := rows.Scan(
			&trial.Plants, &trial.Animals, &trial.Diversity,
			&trial.TargetConnectance, &trial.RealizedConnectance,
			&nest, &mod, &mut, &ant,
		)
		if err != nil {
			return nil, err
		}
		trial.Nestedness = fromNullable(nest)
		trial.Modularity = fromNullable(mod)
		trial.ResilienceMutualistic = fromNullable(mut)
		trial.ResilienceAntagonistic = fromNullable(ant)
		trials = append(trials, trial)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return NewTable(trials), nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("results: store not initialized")
	}
	return s.db, nil
}

func nullable(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func fromNullable(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
