package repository

import (
	"hotel-management/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Room        RoomRepository
	User        UserRepository
	Session     SessionRepository
	Reservation ReservationRepository
	Payment     PaymentRepository
	Outbox      OutboxRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Room:        NewRoomRepository(db, log),
		User:        NewUserRepository(db, log),
		Session:     NewSessionRepository(db, log),
		Reservation: NewReservationRepository(db, log),
		Payment:     NewPaymentRepository(db, log),
		Outbox:      NewOutboxRepository(db, log),
	}
}
