package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/timetable/internal/models"
)

type Store struct {
	Version          int                             `json:"version"`
	Blocks           []models.ScheduledBlock         `json:"blocks"`
	Activities       []models.ActivityRequest        `json:"activities"`
	CompulsoryEvents []models.CompulsoryEventRequest `json:"compulsory_events"`
}

// JSONStore keeps the whole timetable in one JSON document that is
// rewritten on every change.
type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:          1,
		Blocks:           []models.ScheduledBlock{},
		Activities:       []models.ActivityRequest{},
		CompulsoryEvents: []models.CompulsoryEventRequest{},
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'timetable init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	// Write then rename so a crash never leaves a truncated file
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) AddBlock(block models.ScheduledBlock) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	prev := s.store.Blocks
	s.store.Blocks = append(s.store.Blocks, block)
	if err := s.save(); err != nil {
		s.store.Blocks = prev
		return err
	}
	return nil
}

func (s *JSONStore) GetAllBlocks() ([]models.ScheduledBlock, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	out := make([]models.ScheduledBlock, len(s.store.Blocks))
	copy(out, s.store.Blocks)
	return out, nil
}

func (s *JSONStore) AddActivity(req models.ActivityRequest) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	prev := s.store.Activities
	s.store.Activities = append(s.store.Activities, req)
	if err := s.save(); err != nil {
		s.store.Activities = prev
		return err
	}
	return nil
}

func (s *JSONStore) GetAllActivities() ([]models.ActivityRequest, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	out := make([]models.ActivityRequest, len(s.store.Activities))
	copy(out, s.store.Activities)
	return out, nil
}

func (s *JSONStore) AddCompulsoryEvent(block models.ScheduledBlock, req models.CompulsoryEventRequest) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	blocks, events := s.store.Blocks, s.store.CompulsoryEvents
	s.store.Blocks = append(s.store.Blocks, block)
	s.store.CompulsoryEvents = append(s.store.CompulsoryEvents, req)
	if err := s.save(); err != nil {
		s.store.Blocks, s.store.CompulsoryEvents = blocks, events
		return err
	}
	return nil
}

func (s *JSONStore) GetAllCompulsoryEvents() ([]models.CompulsoryEventRequest, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	out := make([]models.CompulsoryEventRequest, len(s.store.CompulsoryEvents))
	copy(out, s.store.CompulsoryEvents)
	return out, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
