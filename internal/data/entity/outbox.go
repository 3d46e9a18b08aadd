package entity

import (
	"time"

	"github.com/google/uuid"
)

const TopicReservationConfirmed = "reservation.confirmed"

// OutboxEvent is written in the same transaction as the state change it
// describes and published afterwards by the relay.
type OutboxEvent struct {
	ID          uuid.UUID  `db:"id"`
	Topic       string     `db:"topic"`
	Payload     []byte     `db:"payload"`
	Attempts    int        `db:"attempts"`
	LastError   *string    `db:"last_error"`
	CreatedAt   time.Time  `db:"created_at"`
	PublishedAt *time.Time `db:"published_at"`
}
