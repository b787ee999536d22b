package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ffcal/internal/event"
)

// DatasetFile is the artifact name inside the output directory.
const DatasetFile = "events.json"

// CalendarFile is the published ICS file name.
const CalendarFile = "calendar.ics"

// Store handles persistence of the event dataset.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Store{dir: dir}, nil
}

// Path returns the dataset file path.
func (s *Store) Path() string {
	return filepath.Join(s.dir, DatasetFile)
}

// WriteEvents replaces the dataset with events. The write is atomic and an
// empty list is refused: the artifact is never blanked by a bad run.
func (s *Store) WriteEvents(events []*event.Event) error {
	if len(events) == 0 {
		return fmt.Errorf("refusing to write empty dataset")
	}

	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	data = append(data, '\n')

	return s.writeAtomic(DatasetFile, data)
}

// WriteCalendar replaces the published ICS file. Like the dataset, empty
// content is refused and the write is atomic.
func (s *Store) WriteCalendar(ics string) error {
	if ics == "" {
		return fmt.Errorf("refusing to write empty calendar")
	}
	return s.writeAtomic(CalendarFile, []byte(ics))
}

func (s *Store) writeAtomic(name string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("replacing %s: %w", name, err)
	}
	return nil
}

// LoadEvents reads the dataset back, e.g. for the calendar stage.
func (s *Store) LoadEvents() ([]*event.Event, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	var events []*event.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("dataset %s is empty", s.Path())
	}
	return events, nil
}
