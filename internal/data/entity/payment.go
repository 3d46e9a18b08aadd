package entity

import (
	"github.com/google/uuid"
)

// PaymentStatusSucceeded is the gateway status that counts as settled.
const PaymentStatusSucceeded = "succeeded"

// Payment is written once, when the gateway reports settlement. Status keeps
// the gateway's own vocabulary.
type Payment struct {
	BaseSimple
	PaymentIntentID string    `db:"payment_intent_id"`
	Amount          float64   `db:"amount"`
	Currency        string    `db:"currency"`
	Status          string    `db:"status"`
	ReservationID   uuid.UUID `db:"reservation_id"`
}
