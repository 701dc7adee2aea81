package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	er "github.com/mcorbin/corbierror"
	"github.com/slotrack/server/internal/util"
	"github.com/slotrack/server/pkg/ledger/aggregates"
)

type Store interface {
	CreateEvent(ctx context.Context, event *aggregates.Event) error
	FetchEvents(ctx context.Context, limit int64, since time.Time, eventTypes ...aggregates.EventType) ([]*aggregates.Event, error)
	CountEvents(ctx context.Context) (int, error)
}

type Service struct {
	logger *slog.Logger
	store  Store
}

func New(logger *slog.Logger, store Store) *Service {
	return &Service{
		logger: logger,
		store:  store,
	}
}

func InitEvent(event *aggregates.Event) {
	event.ID = util.NewUUID()
	event.CreatedAt = time.Now().UTC()
}

func (s *Service) RecordEvent(ctx context.Context, event *aggregates.Event) error {
	if !aggregates.ValidEventType(event.Type) {
		return er.Newf("invalid event type %s", er.BadRequest, true, string(event.Type))
	}
	if !aggregates.ValidEventStatus(event.Status) {
		return er.Newf("invalid event status %s", er.BadRequest, true, string(event.Status))
	}
	s.logger.Debug(fmt.Sprintf("recording event %s %s", event.Type, event.ID))
	return s.store.CreateEvent(ctx, event)
}

func (s *Service) FetchEvents(ctx context.Context, limit int64, since time.Time, eventTypes ...aggregates.EventType) ([]*aggregates.Event, error) {
	return s.store.FetchEvents(ctx, limit, since, eventTypes...)
}

func (s *Service) CountEvents(ctx context.Context) (int, error) {
	return s.store.CountEvents(ctx)
}
