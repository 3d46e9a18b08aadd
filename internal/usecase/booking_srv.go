package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"hotel-management/internal/data/entity"
	"hotel-management/internal/data/repository"
	"hotel-management/internal/dto/request"
	"hotel-management/internal/dto/response"
	"hotel-management/internal/gateway"
	"hotel-management/pkg/apperror"
	"hotel-management/pkg/queue"
	"hotel-management/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const metadataReservationID = "reservation_id"

type BookingService interface {
	BookRoomOnline(ctx context.Context, req *request.BookRoomRequest) (*response.BookingIntentResponse, error)
	ConfirmReservation(ctx context.Context, req *request.ConfirmReservationRequest) (*response.ReservationResponse, error)
	CreateReservation(ctx context.Context, guestID uuid.UUID, req *request.ReservationRequest) (*response.ReservationResponse, error)
}

type bookingService struct {
	repo     *repository.Repository
	payments gateway.PaymentGateway
	currency string
	log      *zap.Logger
}

func NewBookingService(repo *repository.Repository, payments gateway.PaymentGateway, currency string, log *zap.Logger) BookingService {
	if currency == "" {
		currency = "usd"
	}
	return &bookingService{
		repo:     repo,
		payments: payments,
		currency: strings.ToLower(currency),
		log:      log.With(zap.String("service", "booking")),
	}
}

// BookRoomOnline writes a pending reservation and opens a payment intent for
// it. If the intent cannot be created the reservation stays pending.
func (s *bookingService) BookRoomOnline(ctx context.Context, req *request.BookRoomRequest) (*response.BookingIntentResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	guestID, err := uuid.Parse(req.GuestID)
	if err != nil {
		return nil, apperror.Validation("Invalid guest id", map[string]string{"guestId": "Must be a valid UUID"})
	}

	checkIn, checkOut, err := parseBookingDates(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	room, err := s.loadRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	reservation := &entity.Reservation{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		GuestID:      guestID,
		RoomID:       room.ID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Status:       entity.ReservationStatusPending,
		TotalAmount:  room.Price,
		Adults:       *req.Adults,
		Children:     *req.Children,
	}

	if err := s.repo.Reservation.Create(ctx, reservation); err != nil {
		return nil, err
	}

	intent, err := s.payments.CreateIntent(ctx, gateway.CreateIntentInput{
		Amount:         toMinorUnits(room.Total()),
		Currency:       s.currency,
		Metadata:       map[string]string{metadataReservationID: reservation.ID.String()},
		IdempotencyKey: "reservation-" + reservation.ID.String(),
	})
	if err != nil {
		s.log.Error("Failed to create payment intent",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()))
		return nil, apperror.Internal(err)
	}

	s.log.Info("Reservation pending payment",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("payment_intent_id", intent.ID),
		zap.Int64("amount", intent.Amount))

	return &response.BookingIntentResponse{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		ReservationID:   reservation.ID.String(),
	}, nil
}

// ConfirmReservation checks the intent with the gateway and, once it has
// succeeded, records the payment and confirms the reservation atomically.
// The intent id is the idempotency key: a second call yields
// ALREADY_CONFIRMED and writes nothing. A recorded intent is answered from
// the payments table without asking the gateway; the confirm transaction
// still guards against two first calls racing.
func (s *bookingService) ConfirmReservation(ctx context.Context, req *request.ConfirmReservationRequest) (*response.ReservationResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	intentID := strings.TrimSpace(req.PaymentIntentID)

	recorded, err := s.repo.Payment.FindByIntentID(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if recorded != nil {
		s.log.Info("Payment intent already recorded",
			zap.String("payment_intent_id", intentID),
			zap.String("reservation_id", recorded.ReservationID.String()))
		return nil, apperror.Conflict(apperror.TypeAlreadyConfirmed, "Reservation already confirmed")
	}

	intent, err := s.payments.RetrieveIntent(ctx, intentID)
	if err != nil {
		s.log.Error("Failed to retrieve payment intent",
			zap.Error(err),
			zap.String("payment_intent_id", req.PaymentIntentID))
		return nil, apperror.Internal(err)
	}

	if intent.Status != gateway.StatusSucceeded {
		s.log.Info("Payment not settled",
			zap.String("payment_intent_id", intent.ID),
			zap.String("status", intent.Status))
		return nil, apperror.PaymentFailed(intent.Status)
	}

	reservationID, err := uuid.Parse(intent.Metadata[metadataReservationID])
	if err != nil {
		return nil, apperror.NotFound(apperror.TypeReservationNotFound, "Reservation not found")
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, apperror.NotFound(apperror.TypeReservationNotFound, "Reservation not found")
	}

	now := time.Now()
	currency := intent.Currency
	if currency == "" {
		currency = s.currency
	}
	payment := &entity.Payment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		PaymentIntentID: intent.ID,
		Amount:          fromMinorUnits(intent.Amount),
		Currency:        currency,
		Status:          intent.Status,
		ReservationID:   reservation.ID,
	}

	event, err := confirmedEvent(reservation, payment, now)
	if err != nil {
		return nil, err
	}

	confirmed, err := s.repo.Reservation.ConfirmWithPayment(ctx, reservation.ID, payment, event)
	if err != nil {
		if appErr, ok := apperror.As(err); ok {
			s.log.Info("Confirmation rejected",
				zap.String("reservation_id", reservation.ID.String()),
				zap.String("type", appErr.Type()))
		}
		return nil, err
	}

	resp := response.ReservationToResponse(confirmed)
	return &resp, nil
}

// CreateReservation books directly for a signed-in guest, without the
// gateway. The reservation is confirmed immediately.
func (s *bookingService) CreateReservation(ctx context.Context, guestID uuid.UUID, req *request.ReservationRequest) (*response.ReservationResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	checkIn, checkOut, err := parseBookingDates(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	room, err := s.loadRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	reservation := &entity.Reservation{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		GuestID:      guestID,
		RoomID:       room.ID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Status:       entity.ReservationStatusConfirmed,
		TotalAmount:  room.Price,
		Adults:       *req.Adults,
		Children:     *req.Children,
	}

	if err := s.repo.Reservation.Create(ctx, reservation); err != nil {
		return nil, err
	}

	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("guest_id", guestID.String()))

	resp := response.ReservationToResponse(reservation)
	return &resp, nil
}

func (s *bookingService) loadRoom(ctx context.Context, roomID string) (*entity.Room, error) {
	id, err := uuid.Parse(roomID)
	if err != nil {
		return nil, apperror.NotFound(apperror.TypeRoomNotFound, "Room not found")
	}
	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, apperror.NotFound(apperror.TypeRoomNotFound, "Room not found")
	}
	return room, nil
}

func parseBookingDates(checkInRaw, checkOutRaw string) (time.Time, time.Time, error) {
	checkIn, checkOut, err := parseStay(checkInRaw, checkOutRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, apperror.InvalidDates("Check-out date must be after check-in date")
	}
	return checkIn, checkOut, nil
}

func confirmedEvent(res *entity.Reservation, payment *entity.Payment, at time.Time) (*entity.OutboxEvent, error) {
	payload, err := json.Marshal(queue.ReservationConfirmedEvent{
		ReservationID:   res.ID.String(),
		GuestID:         res.GuestID.String(),
		RoomID:          res.RoomID.String(),
		PaymentID:       payment.ID.String(),
		PaymentIntentID: payment.PaymentIntentID,
		CheckInDate:     res.CheckInDate.Format(utils.DateLayout),
		CheckOutDate:    res.CheckOutDate.Format(utils.DateLayout),
		Amount:          payment.Amount,
		Currency:        payment.Currency,
		ConfirmedAt:     at.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("encode confirmed event: %w", err)
	}

	return &entity.OutboxEvent{
		ID:        uuid.New(),
		Topic:     entity.TopicReservationConfirmed,
		Payload:   payload,
		CreatedAt: at,
	}, nil
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromMinorUnits(amount int64) float64 {
	return float64(amount) / 100
}
