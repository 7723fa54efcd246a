package storage

import "github.com/julianstephens/timetable/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Blocks, in insertion order
	AddBlock(models.ScheduledBlock) error
	GetAllBlocks() ([]models.ScheduledBlock, error)

	// Requests, in submission order
	AddActivity(models.ActivityRequest) error
	GetAllActivities() ([]models.ActivityRequest, error)
	// AddCompulsoryEvent saves the event's block and its request atomically
	AddCompulsoryEvent(models.ScheduledBlock, models.CompulsoryEventRequest) error
	GetAllCompulsoryEvents() ([]models.CompulsoryEventRequest, error)

	// Utils
	GetConfigPath() string
}
