// Package scores keeps finished asteroids runs and turn battles in a local SQLite file.
package scores

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultPath is where the binaries keep their database unless told otherwise.
const DefaultPath = "~/.skirmish/scores.db"

// Store wraps the database handle.
type Store struct {
	db *sql.DB
}

// RunResult is one finished asteroids run.
type RunResult struct {
	ID           int64
	Game         string
	Score        int
	Elapsed      time.Duration
	Hits         int
	Breaches     int
	RocksSpawned int
	ShipsSpawned int
	Reason       string
	Seed         uint64
	CreatedAt    time.Time
}

// BattleResult is one finished or abandoned turn battle.
type BattleResult struct {
	ID        int64
	Winner    string
	Rounds    int
	Turns     int
	Survivors []string
	Duration  time.Duration
	CreatedAt time.Time
}

// Open creates or opens the database at path, expanding a leading ~ and creating parent
// directories, then migrates the schema.
func Open(path string) (*Store, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("scores: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("scores: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("scores: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("scores: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("scores: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game TEXT NOT NULL,
			score INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			hits INTEGER NOT NULL DEFAULT 0,
			breaches INTEGER NOT NULL DEFAULT 0,
			rocks_spawned INTEGER NOT NULL DEFAULT 0,
			ships_spawned INTEGER NOT NULL DEFAULT 0,
			reason TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(game, score DESC);

		CREATE TABLE IF NOT EXISTS battles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			winner TEXT NOT NULL DEFAULT '',
			rounds INTEGER NOT NULL DEFAULT 0,
			turns INTEGER NOT NULL DEFAULT 0,
			survivors TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
	`)
	return err
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a run and returns its id. A zero CreatedAt means now.
func (s *Store) SaveRun(run RunResult) (int64, error) {
	if run.Game == "" {
		return 0, fmt.Errorf("scores: run without a game name")
	}
	res, err := s.db.Exec(
		`INSERT INTO runs
		 (game, score, elapsed_ms, hits, breaches, rocks_spawned, ships_spawned, reason, seed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Game,
		run.Score,
		run.Elapsed.Milliseconds(),
		run.Hits,
		run.Breaches,
		run.RocksSpawned,
		run.ShipsSpawned,
		run.Reason,
		int64(run.Seed),
		stamp(run.CreatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("scores: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("scores: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopRuns returns the best runs of game, highest score first. Ties go to the earlier run.
func (s *Store) TopRuns(game string, limit int) ([]RunResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game, score, elapsed_ms, hits, breaches, rocks_spawned, ships_spawned, reason, seed, created_at
		 FROM runs
		 WHERE game = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		game, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("scores: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunResult
	for rows.Next() {
		var (
			run       RunResult
			elapsedMs int64
			seed      int64
			createdAt int64
		)
		if err := rows.Scan(
			&run.ID,
			&run.Game,
			&run.Score,
			&elapsedMs,
			&run.Hits,
			&run.Breaches,
			&run.RocksSpawned,
			&run.ShipsSpawned,
			&run.Reason,
			&seed,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scores: cannot scan row: %w", err)
		}
		run.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		run.Seed = uint64(seed)
		run.CreatedAt = time.UnixMilli(createdAt)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scores: row iteration error: %w", err)
	}
	return runs, nil
}

// BestScore is the highest recorded score of game, or 0 with no runs.
func (s *Store) BestScore(game string) (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM runs WHERE game = ?", game).Scan(&score); err != nil {
		return 0, fmt.Errorf("scores: cannot query best score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// SaveBattle records a battle and returns its id. A zero CreatedAt means now.
func (s *Store) SaveBattle(battle BattleResult) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO battles (winner, rounds, turns, survivors, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		battle.Winner,
		battle.Rounds,
		battle.Turns,
		strings.Join(battle.Survivors, ","),
		battle.Duration.Milliseconds(),
		stamp(battle.CreatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("scores: cannot save battle: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("scores: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentBattles returns the latest battles, newest first.
func (s *Store) RecentBattles(limit int) ([]BattleResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, winner, rounds, turns, survivors, duration_ms, created_at
		 FROM battles
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("scores: cannot query battles: %w", err)
	}
	defer rows.Close()

	var battles []BattleResult
	for rows.Next() {
		var (
			battle     BattleResult
			survivors  string
			durationMs int64
			createdAt  int64
		)
		if err := rows.Scan(
			&battle.ID,
			&battle.Winner,
			&battle.Rounds,
			&battle.Turns,
			&survivors,
			&durationMs,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scores: cannot scan row: %w", err)
		}
		if survivors != "" {
			battle.Survivors = strings.Split(survivors, ",")
		}
		battle.Duration = time.Duration(durationMs) * time.Millisecond
		battle.CreatedAt = time.UnixMilli(createdAt)
		battles = append(battles, battle)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scores: row iteration error: %w", err)
	}
	return battles, nil
}

func stamp(t time.Time) int64 {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UnixMilli()
}
