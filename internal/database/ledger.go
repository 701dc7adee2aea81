package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/slotrack/server/pkg/ledger/aggregates"
)

type dbEvent struct {
	ID           string
	EventType    string `db:"event_type"`
	Status       string
	Verification *string
	Labels       *string
	CreatedAt    time.Time `db:"created_at"`
}

func (c *Database) CreateEvent(ctx context.Context, event *aggregates.Event) error {
	labels, err := labelsToString(event.Labels)
	if err != nil {
		return err
	}
	data := dbEvent{
		ID:           event.ID,
		EventType:    string(event.Type),
		Status:       string(event.Status),
		Verification: event.Verification,
		Labels:       labels,
		CreatedAt:    event.CreatedAt,
	}
	result, err := c.db.NamedExecContext(ctx, "INSERT INTO operational_event (id, event_type, status, verification, labels, created_at) VALUES (:id, :event_type, :status, :verification, :labels, :created_at)", data)
	if err != nil {
		return fmt.Errorf("fail to create event %s: %w", data.ID, err)
	}
	return checkResult(result, 1)
}

func (c *Database) FetchEvents(ctx context.Context, limit int64, since time.Time, eventTypes ...aggregates.EventType) ([]*aggregates.Event, error) {
	query := "SELECT id, event_type, status, verification, labels, created_at FROM operational_event WHERE created_at >= ?"
	args := []any{since}
	if len(eventTypes) > 0 {
		types := make([]string, 0, len(eventTypes))
		for _, eventType := range eventTypes {
			types = append(types, string(eventType))
		}
		query += " AND event_type IN (?)"
		args = append(args, types)
	}
	query += " ORDER BY created_at ASC LIMIT ?"
	args = append(args, limit)
	query, queryArgs, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fail to build events query: %w", err)
	}
	dbEvents := []dbEvent{}
	err = c.db.SelectContext(ctx, &dbEvents, c.db.Rebind(query), queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("fail to list events: %w", err)
	}
	result := make([]*aggregates.Event, 0, len(dbEvents))
	for i := range dbEvents {
		dbEvent := dbEvents[i]
		labels, err := stringToLabels(dbEvent.Labels)
		if err != nil {
			return nil, err
		}
		result = append(result, &aggregates.Event{
			ID:           dbEvent.ID,
			Type:         aggregates.EventType(dbEvent.EventType),
			Status:       aggregates.EventStatus(dbEvent.Status),
			Verification: dbEvent.Verification,
			Labels:       labels,
			CreatedAt:    dbEvent.CreatedAt,
		})
	}
	return result, nil
}

func (c *Database) CountEvents(ctx context.Context) (int, error) {
	var count int
	err := c.db.GetContext(ctx, &count, "SELECT count(*) FROM operational_event")
	if err != nil {
		return 0, fmt.Errorf("fail to count events: %w", err)
	}
	return count, nil
}
