package ws

import (
	"time"
)

type EventType string

const (
	EventCheckinRecorded   EventType = "checkin.recorded"
	EventCheckinSuppressed EventType = "checkin.suppressed"
	EventEmployeeEnrolled  EventType = "employee.enrolled"
)

type Event struct {
	Type      EventType   `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}
