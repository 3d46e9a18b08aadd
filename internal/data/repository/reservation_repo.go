package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"hotel-management/internal/data/entity"
	"hotel-management/pkg/apperror"
	"hotel-management/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	CountByStatus(ctx context.Context, status entity.ReservationStatus) (int64, error)

	// ConfirmWithPayment records a settled payment and confirms the
	// reservation in one transaction, appending event to the outbox.
	ConfirmWithPayment(ctx context.Context, reservationID uuid.UUID, payment *entity.Payment, event *entity.OutboxEvent) (*entity.Reservation, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `id, guest_id, room_id, payment_id, check_in_date, check_out_date, status,
		       total_amount, adults, children, created_at, updated_at`

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var res entity.Reservation
	err := row.Scan(
		&res.ID,
		&res.GuestID,
		&res.RoomID,
		&res.PaymentID,
		&res.CheckInDate,
		&res.CheckOutDate,
		&res.Status,
		&res.TotalAmount,
		&res.Adults,
		&res.Children,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (id, guest_id, room_id, payment_id, check_in_date, check_out_date,
		                          status, total_amount, adults, children, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.GuestID,
		reservation.RoomID,
		reservation.PaymentID,
		reservation.CheckInDate,
		reservation.CheckOutDate,
		reservation.Status,
		reservation.TotalAmount,
		reservation.Adults,
		reservation.Children,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("room_id", reservation.RoomID.String()),
			zap.String("guest_id", reservation.GuestID.String()),
		)
		return fmt.Errorf("create reservation: %w", err)
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	res, err := scanReservation(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id, err)
	}

	return res, nil
}

func (r *reservationRepository) CountByStatus(ctx context.Context, status entity.ReservationStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reservations WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count reservations by status %s: %w", status, err)
	}
	return count, nil
}

func (r *reservationRepository) ConfirmWithPayment(ctx context.Context, reservationID uuid.UUID, payment *entity.Payment, event *entity.OutboxEvent) (result *entity.Reservation, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin confirm tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				r.log.Warn("Rollback failed", zap.Error(rbErr))
			}
		}
	}()

	var status entity.ReservationStatus
	err = tx.QueryRow(ctx, `SELECT status FROM reservations WHERE id = $1 FOR UPDATE`, reservationID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound(apperror.TypeReservationNotFound, "Reservation not found")
	}
	if err != nil {
		return nil, fmt.Errorf("lock reservation %s: %w", reservationID, err)
	}

	switch status {
	case entity.ReservationStatusPending:
	case entity.ReservationStatusConfirmed:
		return nil, apperror.Conflict(apperror.TypeAlreadyConfirmed, "Reservation already confirmed")
	default:
		return nil, apperror.New(http.StatusConflict, apperror.TypeReservationNotPending,
			"Reservation is not awaiting payment", "status", string(status))
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO payments (id, payment_intent_id, amount, currency, status, reservation_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		payment.ID,
		payment.PaymentIntentID,
		payment.Amount,
		payment.Currency,
		payment.Status,
		reservationID,
		payment.CreatedAt,
	)
	if database.IsUniqueViolation(err, "payments_payment_intent_id_key") {
		return nil, apperror.Conflict(apperror.TypeAlreadyConfirmed, "Payment already recorded").Wrap(err)
	}
	if err != nil {
		return nil, fmt.Errorf("insert payment %s: %w", payment.PaymentIntentID, err)
	}

	result, err = scanReservation(tx.QueryRow(ctx, `
		UPDATE reservations
		SET status = $2, payment_id = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING `+reservationColumns,
		reservationID, entity.ReservationStatusConfirmed, payment.ID,
	))
	if err != nil {
		return nil, fmt.Errorf("confirm reservation %s: %w", reservationID, err)
	}

	if err = insertOutboxEvent(ctx, tx, event); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit confirm tx: %w", err)
	}

	r.log.Info("Reservation confirmed",
		zap.String("reservation_id", reservationID.String()),
		zap.String("payment_intent_id", payment.PaymentIntentID),
	)
	return result, nil
}
