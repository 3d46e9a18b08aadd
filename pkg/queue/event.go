// Package queue carries domain events to RabbitMQ.
package queue

// ReservationConfirmedEvent is emitted once a reservation's payment settles.
type ReservationConfirmedEvent struct {
	ReservationID   string  `json:"reservationId"`
	GuestID         string  `json:"guestId"`
	RoomID          string  `json:"roomId"`
	PaymentID       string  `json:"paymentId"`
	PaymentIntentID string  `json:"paymentIntentId"`
	CheckInDate     string  `json:"checkInDate"`
	CheckOutDate    string  `json:"checkOutDate"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	ConfirmedAt     string  `json:"confirmedAt"`
}
