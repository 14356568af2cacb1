package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

const (
	StreamName  = "ATTENDANCE"
	SubjectBase = "attendance"
)

// CheckinEvent is the payload published for every recorded check-in.
type CheckinEvent struct {
	RecordID   string    `json:"record_id"`
	EmployeeID string    `json:"employee_id"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	Timestamp  time.Time `json:"timestamp"`
	Confidence float64   `json:"confidence"`
}

// Publisher emits check-in events to NATS JetStream so payroll and other
// downstream consumers can react without polling the database.
type Publisher struct {
	nc *nats.Conn
	js jetstream.JetStream
}

func NewPublisher(natsURL string) (*Publisher, error) {
	nc, err := nats.Connect(natsURL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create jetstream context: %w", err)
	}

	return &Publisher{nc: nc, js: js}, nil
}

// EnsureStream creates the attendance stream if it doesn't exist.
func (p *Publisher) EnsureStream(ctx context.Context) error {
	cfg := jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{SubjectBase + ".>"},
		Retention:   jetstream.InterestPolicy,
		MaxAge:      7 * 24 * time.Hour,
		Storage:     jetstream.FileStorage,
		Description: "Recorded attendance check-ins",
	}

	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := p.js.CreateOrUpdateStream(opCtx, cfg); err != nil {
		return fmt.Errorf("create stream %s: %w", StreamName, err)
	}
	return nil
}

// PublishCheckin publishes a recorded check-in. Suppressed check-ins are
// never published.
func (p *Publisher) PublishCheckin(ctx context.Context, employee *domain.Employee, record *domain.AttendanceRecord) error {
	event := CheckinEvent{
		RecordID:   record.ID.String(),
		EmployeeID: record.EmployeeID.String(),
		Name:       employee.FullName(),
		Department: employee.Department,
		Timestamp:  record.Timestamp,
		Confidence: record.Confidence,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal checkin event: %w", err)
	}

	subject := fmt.Sprintf("%s.checkin.%s", SubjectBase, record.EmployeeID)
	if _, err := p.js.Publish(ctx, subject, payload); err != nil {
		return fmt.Errorf("publish checkin: %w", err)
	}
	return nil
}

func (p *Publisher) Ping() error {
	if !p.nc.IsConnected() {
		return fmt.Errorf("nats not connected")
	}
	return nil
}

func (p *Publisher) Close() {
	p.nc.Close()
}
