package snapshot

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hlzx-cpu/VEX-rankings/internal/rating"
)

// columns is the published table layout. The dashboard and the chart
// page both read this file, so the order is part of the contract.
var columns = []string{"team_name", "elo", "strength_of_schedule", "driver_skills", "programming_skills"}

// Store reads and writes the published rankings snapshot
type Store struct {
	path string
}

// NewStore creates a store for the snapshot at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the snapshot file location
func (s *Store) Path() string {
	return s.path
}

// Write publishes rows, replacing the snapshot in one rename so a
// concurrent reader never sees a partial table
func (s *Store) Write(rows []rating.Row) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".rankings-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(columns); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Team,
			strconv.FormatFloat(row.Rating, 'f', 2, 64),
			strconv.FormatFloat(row.ScheduleStrength, 'f', 4, 64),
			strconv.Itoa(row.DriverSkills),
			strconv.Itoa(row.ProgrammingSkills),
		}
		if err := w.Write(record); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write snapshot row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush snapshot: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}

	return nil
}

// Load reads the snapshot back. It returns an error wrapping
// fs.ErrNotExist when no table has been published yet.
func (s *Store) Load() ([]rating.Row, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("snapshot %s is empty", s.path)
	}

	header := records[0]
	if len(header) != len(columns) {
		return nil, fmt.Errorf("unexpected snapshot header %v", header)
	}
	for i, col := range columns {
		if header[i] != col {
			return nil, fmt.Errorf("unexpected snapshot header %v", header)
		}
	}

	rows := make([]rating.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row, err := parseRow(record)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// ModTime returns when the snapshot was last published
func (s *Store) ModTime() (time.Time, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to stat snapshot: %w", err)
	}
	return info.ModTime(), nil
}

func parseRow(record []string) (rating.Row, error) {
	rating64, err := strconv.ParseFloat(record[1], 64)
	if err != nil {
		return rating.Row{}, fmt.Errorf("failed to parse rating for %s: %w", record[0], err)
	}
	strength, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return rating.Row{}, fmt.Errorf("failed to parse schedule strength for %s: %w", record[0], err)
	}
	driver, err := strconv.Atoi(record[3])
	if err != nil {
		return rating.Row{}, fmt.Errorf("failed to parse driver skills for %s: %w", record[0], err)
	}
	programming, err := strconv.Atoi(record[4])
	if err != nil {
		return rating.Row{}, fmt.Errorf("failed to parse programming skills for %s: %w", record[0], err)
	}

	return rating.Row{
		Team:              record[0],
		Rating:            rating64,
		ScheduleStrength:  strength,
		DriverSkills:      driver,
		ProgrammingSkills: programming,
	}, nil
}
