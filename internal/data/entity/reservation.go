package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending    ReservationStatus = "pending"
	ReservationStatusConfirmed  ReservationStatus = "confirmed"
	ReservationStatusCheckedIn  ReservationStatus = "checked-in"
	ReservationStatusCheckedOut ReservationStatus = "checked-out"
	ReservationStatusCancelled  ReservationStatus = "cancelled"
)

type Reservation struct {
	Base
	GuestID      uuid.UUID         `db:"guest_id"`
	RoomID       uuid.UUID         `db:"room_id"`
	PaymentID    *uuid.UUID        `db:"payment_id"`
	CheckInDate  time.Time         `db:"check_in_date"`
	CheckOutDate time.Time         `db:"check_out_date"`
	Status       ReservationStatus `db:"status"`
	TotalAmount  float64           `db:"total_amount"`
	Adults       int               `db:"adults"`
	Children     int               `db:"children"`
}
