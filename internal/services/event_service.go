package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/agrasia-be/internal/models"
)

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	CreateEvent(eventType, level, message string, farmID *string) error
	GetRecentEvents(limit int) ([]models.Event, error)
}

// EventService records activity events in the database.
type EventService struct {
	db  *sql.DB
	now func() time.Time
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{db: db, now: time.Now}
}

// CreateEvent logs a new event to the database.
func (s *EventService) CreateEvent(eventType, level, message string, farmID *string) error {
	event := models.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Level:     level,
		Message:   message,
		FarmID:    farmID,
		CreatedAt: s.now().UTC(),
	}

	stmt, err := s.db.Prepare("INSERT INTO events (id, type, level, message, farm_id, created_at) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(event.ID, event.Type, event.Level, event.Message, event.FarmID, event.CreatedAt)
	return err
}

// GetRecentEvents retrieves the most recent events from the database.
func (s *EventService) GetRecentEvents(limit int) ([]models.Event, error) {
	rows, err := s.db.Query("SELECT id, type, level, message, farm_id, created_at FROM events ORDER BY created_at DESC, rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var event models.Event
		var farmID sql.NullString
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &farmID, &event.CreatedAt); err != nil {
			return nil, err
		}
		if farmID.Valid {
			event.FarmID = &farmID.String
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
