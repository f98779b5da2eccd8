package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/s3lm4n/flight-planner/internal/dispatch"
	"github.com/s3lm4n/flight-planner/pkg/logger"

	_ "modernc.org/sqlite"
)

// Open opens (or creates) the sqlite database at the given path.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	return db, nil
}

// DispatchStorage records every dispatch evaluation for later review.
type DispatchStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewDispatchStorage creates a new sqlite dispatch storage.
func NewDispatchStorage(db *sql.DB, log *logger.Logger) (*DispatchStorage, error) {
	storage := &DispatchStorage{
		db:     db,
		logger: log.Named("sqlite-dispatches"),
	}
	if err := storage.initDB(); err != nil {
		return nil, err
	}
	return storage, nil
}

// initDB initializes the database tables
func (s *DispatchStorage) initDB() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS dispatches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			flight TEXT NOT NULL,
			aircraft_type TEXT NOT NULL,
			route_distance_nm REAL NOT NULL,
			feasible INTEGER NOT NULL,
			block_fuel_kg REAL NOT NULL,
			tow_kg REAL NOT NULL,
			reasons TEXT NOT NULL,
			warnings TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create dispatches table: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_dispatches_flight ON dispatches(flight)`,
		`CREATE INDEX IF NOT EXISTS idx_dispatches_aircraft_type ON dispatches(aircraft_type)`,
		`CREATE INDEX IF NOT EXISTS idx_dispatches_created_at ON dispatches(created_at)`,
	}
	for _, indexSQL := range indexes {
		if _, err := s.db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create dispatch index: %w", err)
		}
	}

	return nil
}

// StoreDecision stores one evaluation result.
func (s *DispatchStorage) StoreDecision(in dispatch.Input, result dispatch.Result) (int64, error) {
	reasons, err := json.Marshal(result.Reasons)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal reasons: %w", err)
	}
	warnings, err := json.Marshal(result.Warnings)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal warnings: %w", err)
	}

	res, err := s.db.Exec(
		`INSERT INTO dispatches
		(flight, aircraft_type, route_distance_nm, feasible, block_fuel_kg, tow_kg, reasons, warnings, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Flight,
		in.Aircraft.TypeCode,
		in.RouteDistanceNM,
		result.Feasible,
		result.Fuel.BlockFuelKg,
		result.Weights.TOWKg,
		string(reasons),
		string(warnings),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert dispatch record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	return id, nil
}

// GetRecent returns the most recent dispatch decisions.
func (s *DispatchStorage) GetRecent(limit int) ([]*DispatchRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, flight, aircraft_type, route_distance_nm, feasible, block_fuel_kg, tow_kg, reasons, warnings, created_at
		FROM dispatches
		ORDER BY created_at DESC, id DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent dispatches: %w", err)
	}
	defer rows.Close()

	return s.scanDispatchRows(rows)
}

// GetByFlight returns the decisions recorded for one flight.
func (s *DispatchStorage) GetByFlight(flight string, limit int) ([]*DispatchRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, flight, aircraft_type, route_distance_nm, feasible, block_fuel_kg, tow_kg, reasons, warnings, created_at
		FROM dispatches
		WHERE flight = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`,
		flight, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query dispatches by flight: %w", err)
	}
	defer rows.Close()

	return s.scanDispatchRows(rows)
}

// GetByAircraftType returns the decisions recorded for one aircraft type.
func (s *DispatchStorage) GetByAircraftType(typeCode string, limit int) ([]*DispatchRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, flight, aircraft_type, route_distance_nm, feasible, block_fuel_kg, tow_kg, reasons, warnings, created_at
		FROM dispatches
		WHERE aircraft_type = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`,
		typeCode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query dispatches by aircraft type: %w", err)
	}
	defer rows.Close()

	return s.scanDispatchRows(rows)
}

// scanDispatchRows scans database rows into DispatchRecord structs
func (s *DispatchStorage) scanDispatchRows(rows *sql.Rows) ([]*DispatchRecord, error) {
	var records []*DispatchRecord
	for rows.Next() {
		var record DispatchRecord
		var createdAt string

		if err := rows.Scan(
			&record.ID,
			&record.Flight,
			&record.AircraftType,
			&record.RouteDistanceNM,
			&record.Feasible,
			&record.BlockFuelKg,
			&record.TOWKg,
			&record.ReasonsJSON,
			&record.WarningsJSON,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan dispatch row: %w", err)
		}

		ts, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			s.logger.Warn("Failed to parse dispatch timestamp",
				logger.String("value", createdAt), logger.Error(err))
		} else {
			record.CreatedAt = ts
		}

		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dispatch rows: %w", err)
	}
	return records, nil
}
