package sqlite

import (
	"fmt"

	"github.com/julianstephens/timetable/internal/models"
)

func (s *Store) AddBlock(b models.ScheduledBlock) error {
	_, err := s.db.Exec(`
		INSERT INTO blocks (day, start_time, end_time, name, type)
		VALUES (?, ?, ?, ?, ?)`,
		int(b.Day), b.Start, b.End, b.Name, b.Type.String())
	if err != nil {
		return fmt.Errorf("failed to insert block: %w", err)
	}
	return nil
}

func (s *Store) GetAllBlocks() ([]models.ScheduledBlock, error) {
	rows, err := s.db.Query(`SELECT day, start_time, end_time, name, type FROM blocks ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blocks := []models.ScheduledBlock{}
	for rows.Next() {
		var b models.ScheduledBlock
		var day int
		var blockType string
		if err := rows.Scan(&day, &b.Start, &b.End, &b.Name, &blockType); err != nil {
			return nil, err
		}
		b.Day = models.Day(day)
		if b.Type, err = models.ParseBlockType(blockType); err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

func (s *Store) AddActivity(a models.ActivityRequest) error {
	_, err := s.db.Exec(`
		INSERT INTO activities (id, activity, priority, deadline, timing, deadline_date, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Activity, a.Priority, a.Deadline, a.Timing, a.DeadlineDate, a.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

func (s *Store) GetAllActivities() ([]models.ActivityRequest, error) {
	rows, err := s.db.Query(`
		SELECT id, activity, priority, deadline, timing, deadline_date, submitted_at
		FROM activities ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []models.ActivityRequest{}
	for rows.Next() {
		var a models.ActivityRequest
		if err := rows.Scan(&a.ID, &a.Activity, &a.Priority, &a.Deadline, &a.Timing, &a.DeadlineDate, &a.SubmittedAt); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (s *Store) AddCompulsoryEvent(b models.ScheduledBlock, e models.CompulsoryEventRequest) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO blocks (day, start_time, end_time, name, type)
		VALUES (?, ?, ?, ?, ?)`,
		int(b.Day), b.Start, b.End, b.Name, b.Type.String()); err != nil {
		return fmt.Errorf("failed to insert block: %w", err)
	}
	if _, err := tx.Exec(`
		INSERT INTO compulsory_events (id, event, day, start_time, end_time, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Event, int(e.Day), e.StartTime, e.EndTime, e.SubmittedAt); err != nil {
		return fmt.Errorf("failed to insert compulsory event: %w", err)
	}
	return tx.Commit()
}

func (s *Store) GetAllCompulsoryEvents() ([]models.CompulsoryEventRequest, error) {
	rows, err := s.db.Query(`
		SELECT id, event, day, start_time, end_time, submitted_at
		FROM compulsory_events ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.CompulsoryEventRequest{}
	for rows.Next() {
		var e models.CompulsoryEventRequest
		var day int
		if err := rows.Scan(&e.ID, &e.Event, &day, &e.StartTime, &e.EndTime, &e.SubmittedAt); err != nil {
			return nil, err
		}
		e.Day = models.Day(day)
		events = append(events, e)
	}
	return events, rows.Err()
}
