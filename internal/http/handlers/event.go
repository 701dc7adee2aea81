package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/slotrack/server/pkg/ledger"
	"github.com/slotrack/server/pkg/ledger/aggregates"
)

type CreateEventInput struct {
	Type         string            `json:"type" validate:"required"`
	Status       string            `json:"status" validate:"required"`
	Verification string            `json:"verification"`
	Labels       map[string]string `json:"labels"`
}

func (b *Builder) CreateEvent(ec echo.Context) error {
	var payload CreateEventInput
	if err := ec.Bind(&payload); err != nil {
		return err
	}
	if err := ec.Validate(payload); err != nil {
		return err
	}

	labels := payload.Labels
	if labels == nil {
		labels = make(map[string]string)
	}

	event := aggregates.Event{
		Type:   aggregates.EventType(payload.Type),
		Status: aggregates.EventStatus(payload.Status),
		Labels: labels,
	}
	if payload.Verification != "" {
		event.Verification = &payload.Verification
	}

	ledger.InitEvent(&event)
	err := b.ledger.RecordEvent(ec.Request().Context(), &event)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusCreated, NewResponse("Event recorded"))
}
