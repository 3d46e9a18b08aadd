package repository

import (
	"context"
	"errors"
	"fmt"

	"hotel-management/internal/data/entity"
	"hotel-management/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PaymentRepository is read-only: payments are written by
// ReservationRepository.ConfirmWithPayment.
type PaymentRepository interface {
	FindByIntentID(ctx context.Context, intentID string) (*entity.Payment, error)
	SumByStatus(ctx context.Context, status string) (float64, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

func (r *paymentRepository) FindByIntentID(ctx context.Context, intentID string) (*entity.Payment, error) {
	query := `
		SELECT id, payment_intent_id, amount, currency, status, reservation_id, created_at
		FROM payments
		WHERE payment_intent_id = $1
	`

	var payment entity.Payment
	err := r.db.QueryRow(ctx, query, intentID).Scan(
		&payment.ID,
		&payment.PaymentIntentID,
		&payment.Amount,
		&payment.Currency,
		&payment.Status,
		&payment.ReservationID,
		&payment.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment",
			zap.Error(err),
			zap.String("payment_intent_id", intentID),
		)
		return nil, fmt.Errorf("find payment %s: %w", intentID, err)
	}

	return &payment, nil
}

func (r *paymentRepository) SumByStatus(ctx context.Context, status string) (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(amount), 0)::float8 FROM payments WHERE status = $1`
	if err := r.db.QueryRow(ctx, query, status).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum payments by status %s: %w", status, err)
	}
	return total, nil
}
