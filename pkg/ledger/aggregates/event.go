package aggregates

import "time"

type EventType string

const (
	EventTypeAppLaunch EventType = "app_launch"
	EventTypeCrash     EventType = "crash"
	EventTypeInstall   EventType = "install"
	EventTypeSync      EventType = "sync"
	EventTypeUpdate    EventType = "update"
	EventTypeUninstall EventType = "uninstall"
)

type EventStatus string

const (
	EventStatusSuccess EventStatus = "success"
	EventStatusFailure EventStatus = "failure"
)

// Event is a single operational event recorded in the ledger. Events are
// read-only once written.
type Event struct {
	ID           string
	Type         EventType
	Status       EventStatus
	Verification *string
	Labels       map[string]string
	CreatedAt    time.Time
}

func (e *Event) IsSuccess() bool {
	return e.Status == EventStatusSuccess
}

func (e *Event) IsVerified() bool {
	return e.Verification != nil
}

func ValidEventType(eventType EventType) bool {
	switch eventType {
	case EventTypeAppLaunch, EventTypeCrash, EventTypeInstall, EventTypeSync, EventTypeUpdate, EventTypeUninstall:
		return true
	}
	return false
}

func ValidEventStatus(status EventStatus) bool {
	return status == EventStatusSuccess || status == EventStatusFailure
}
