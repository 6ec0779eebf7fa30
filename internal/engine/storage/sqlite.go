package storage

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/rendis/redbook/internal/model"
)

// Store writes catalog snapshots that LoadSpecies can read back in catalog order.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS species (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		position INTEGER NOT NULL UNIQUE,
		name TEXT NOT NULL UNIQUE,
		category TEXT,
		status TEXT,
		description TEXT,
		image TEXT
	);
	CREATE TABLE IF NOT EXISTS populations (
		species_id INTEGER NOT NULL REFERENCES species(id) ON DELETE CASCADE,
		province TEXT NOT NULL,
		total INTEGER,
		total_text TEXT,
		UNIQUE(species_id, province)
	);
	CREATE INDEX IF NOT EXISTS idx_populations_province ON populations(province);
	CREATE INDEX IF NOT EXISTS idx_species_category ON species(category);
	`
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// WriteCatalog replaces the stored snapshot with species. Null and falsy
// population records are not written.
func (s *Store) WriteCatalog(species []model.Species) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM populations; DELETE FROM species;`); err != nil {
		return 0, fmt.Errorf("clearing snapshot: %w", err)
	}

	speciesStmt, err := tx.Prepare(`
		INSERT INTO species (position, name, category, status, description, image)
		VALUES (?,?,?,?,?,?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing species stmt: %w", err)
	}
	defer speciesStmt.Close()

	popStmt, err := tx.Prepare(`INSERT INTO populations (species_id, province, total, total_text) VALUES (?,?,?,?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing population stmt: %w", err)
	}
	defer popStmt.Close()

	for i, sp := range species {
		res, err := speciesStmt.Exec(i, sp.Name, sp.Category, string(sp.Status), sp.Description, sp.Image)
		if err != nil {
			return 0, fmt.Errorf("inserting species %q: %w", sp.Name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("species id: %w", err)
		}
		for province, rec := range sp.Populations {
			if !rec.Present() {
				continue
			}
			var total sql.NullInt64
			if rec.Total != nil {
				total = sql.NullInt64{Int64: int64(*rec.Total), Valid: true}
			}
			if _, err := popStmt.Exec(id, province, total, rec.Text); err != nil {
				return 0, fmt.Errorf("inserting population %q/%q: %w", sp.Name, province, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing tx: %w", err)
	}

	return len(species), nil
}

func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM species").Scan(&count)
	return count, err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// LoadSpecies reads a snapshot written by WriteCatalog.
func LoadSpecies(dbPath string) ([]model.Species, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT id, name, category, status, description, image
		FROM species ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying species: %w", err)
	}
	defer rows.Close()

	var species []model.Species
	index := make(map[int64]int)
	for rows.Next() {
		var (
			id                                   int64
			sp                                   model.Species
			category, status, description, image sql.NullString
		)
		if err := rows.Scan(&id, &sp.Name, &category, &status, &description, &image); err != nil {
			return nil, fmt.Errorf("scanning species: %w", err)
		}
		sp.Category = category.String
		sp.Status = model.Status(status.String)
		sp.Description = description.String
		sp.Image = image.String
		sp.Populations = make(map[string]*model.PopulationRecord)
		index[id] = len(species)
		species = append(species, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	popRows, err := db.Query(`SELECT species_id, province, total, total_text FROM populations`)
	if err != nil {
		return nil, fmt.Errorf("querying populations: %w", err)
	}
	defer popRows.Close()

	for popRows.Next() {
		var (
			id       int64
			province string
			total    sql.NullInt64
			text     sql.NullString
		)
		if err := popRows.Scan(&id, &province, &total, &text); err != nil {
			return nil, fmt.Errorf("scanning population: %w", err)
		}
		i, ok := index[id]
		if !ok {
			continue
		}
		rec := &model.PopulationRecord{Text: text.String}
		if total.Valid {
			n := int(total.Int64)
			rec.Total = &n
		}
		species[i].Populations[province] = rec
	}
	return species, popRows.Err()
}
