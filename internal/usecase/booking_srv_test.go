package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"hotel-management/internal/data/entity"
	"hotel-management/internal/dto/request"
	"hotel-management/pkg/apperror"
	"hotel-management/pkg/queue"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingFixture(t *testing.T) (*store, *fakeGateway, BookingService) {
	t.Helper()
	st := newStore()
	gw := newFakeGateway()
	return st, gw, NewBookingService(st.repository(), gw, "USD", testLogger())
}

func bookRequest(roomID uuid.UUID) *request.BookRoomRequest {
	return &request.BookRoomRequest{
		RoomID:       roomID.String(),
		GuestID:      uuid.NewString(),
		CheckInDate:  "2026-11-01",
		CheckOutDate: "2026-11-04",
		Adults:       intPtr(2),
		Children:     intPtr(0),
	}
}

func TestBookRoomOnline_CreatesPendingReservationAndIntent(t *testing.T) {
	st, gw, svc := newBookingFixture(t)
	room := st.addRoom(100, 10)

	resp, err := svc.BookRoomOnline(context.Background(), bookRequest(room.ID))
	require.NoError(t, err)
	require.NotEmpty(t, resp.PaymentIntentID)
	require.NotEmpty(t, resp.ClientSecret)

	require.Len(t, gw.created, 1)
	assert.Equal(t, int64(11000), gw.created[0].Amount)
	assert.Equal(t, "usd", gw.created[0].Currency)
	assert.Equal(t, resp.ReservationID, gw.created[0].Metadata["reservation_id"])
	assert.Equal(t, "reservation-"+resp.ReservationID, gw.created[0].IdempotencyKey)

	res := st.reservations[uuid.MustParse(resp.ReservationID)]
	require.NotNil(t, res)
	assert.Equal(t, entity.ReservationStatusPending, res.Status)
	// The stored total is the room price; tax is only charged on the intent.
	assert.Equal(t, 100.0, res.TotalAmount)
	assert.Nil(t, res.PaymentID)
}

func TestBookRoomOnline_RoundsToMinorUnits(t *testing.T) {
	st, gw, svc := newBookingFixture(t)
	room := st.addRoom(19.99, 1.5)

	_, err := svc.BookRoomOnline(context.Background(), bookRequest(room.ID))
	require.NoError(t, err)
	require.Len(t, gw.created, 1)
	assert.Equal(t, int64(2149), gw.created[0].Amount)
}

func TestBookRoomOnline_Rejections(t *testing.T) {
	st, _, svc := newBookingFixture(t)
	room := st.addRoom(100, 10)

	tests := []struct {
		name    string
		mutate  func(r *request.BookRoomRequest)
		errType string
	}{
		{
			name:    "missing room",
			mutate:  func(r *request.BookRoomRequest) { r.RoomID = "" },
			errType: apperror.TypeRequiredFields,
		},
		{
			name:    "missing children",
			mutate:  func(r *request.BookRoomRequest) { r.Children = nil },
			errType: apperror.TypeRequiredFields,
		},
		{
			name:    "unknown room",
			mutate:  func(r *request.BookRoomRequest) { r.RoomID = uuid.NewString() },
			errType: apperror.TypeRoomNotFound,
		},
		{
			name:    "malformed room id",
			mutate:  func(r *request.BookRoomRequest) { r.RoomID = "room-101" },
			errType: apperror.TypeRoomNotFound,
		},
		{
			name:    "check-out before check-in",
			mutate:  func(r *request.BookRoomRequest) { r.CheckOutDate = "2026-10-30" },
			errType: apperror.TypeInvalidDates,
		},
		{
			name:    "unparseable date",
			mutate:  func(r *request.BookRoomRequest) { r.CheckInDate = "next tuesday" },
			errType: apperror.TypeInvalidDates,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := bookRequest(room.ID)
			tt.mutate(req)

			_, err := svc.BookRoomOnline(context.Background(), req)
			require.Error(t, err)
			assert.True(t, apperror.Is(err, tt.errType), "got %v", err)
		})
	}
	assert.Empty(t, st.reservations)
}

func TestBookRoomOnline_GatewayFailureLeavesPendingReservation(t *testing.T) {
	st, gw, svc := newBookingFixture(t)
	room := st.addRoom(100, 10)
	gw.createErr = errors.New("stripe unavailable")

	_, err := svc.BookRoomOnline(context.Background(), bookRequest(room.ID))
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.TypeServer))
	require.Len(t, st.reservations, 1)
	for _, res := range st.reservations {
		assert.Equal(t, entity.ReservationStatusPending, res.Status)
	}
}

func TestConfirmReservation_UnsettledIntent(t *testing.T) {
	st, _, svc := newBookingFixture(t)
	room := st.addRoom(100, 10)

	booked, err := svc.BookRoomOnline(context.Background(), bookRequest(room.ID))
	require.NoError(t, err)

	_, err = svc.ConfirmReservation(context.Background(), &request.ConfirmReservationRequest{
		PaymentIntentID: booked.PaymentIntentID,
	})
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.TypePaymentFailed, appErr.Type())
	assert.Equal(t, http.StatusBadRequest, appErr.Status)

	assert.Empty(t, st.payments)
	assert.Empty(t, st.outbox)
	assert.Equal(t, entity.ReservationStatusPending, st.reservations[uuid.MustParse(booked.ReservationID)].Status)
}

func TestConfirmReservation_RecordsPaymentOnce(t *testing.T) {
	st, gw, svc := newBookingFixture(t)
	room := st.addRoom(100, 10)
	ctx := context.Background()

	booked, err := svc.BookRoomOnline(ctx, bookRequest(room.ID))
	require.NoError(t, err)
	gw.settle(booked.PaymentIntentID)

	confirm := &request.ConfirmReservationRequest{PaymentIntentID: booked.PaymentIntentID}
	resp, err := svc.ConfirmReservation(ctx, confirm)
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationStatusConfirmed, resp.Status)
	require.NotNil(t, resp.PaymentID)

	payment := st.payments[booked.PaymentIntentID]
	require.NotNil(t, payment)
	assert.Equal(t, 110.0, payment.Amount)
	assert.Equal(t, "usd", payment.Currency)
	assert.Equal(t, entity.PaymentStatusSucceeded, payment.Status)
	assert.Equal(t, payment.ID.String(), *resp.PaymentID)

	require.Len(t, st.outbox, 1)
	assert.Equal(t, entity.TopicReservationConfirmed, st.outbox[0].Topic)
	var event queue.ReservationConfirmedEvent
	require.NoError(t, json.Unmarshal(st.outbox[0].Payload, &event))
	assert.Equal(t, booked.ReservationID, event.ReservationID)
	assert.Equal(t, booked.PaymentIntentID, event.PaymentIntentID)
	assert.Equal(t, "2026-11-01", event.CheckInDate)

	_, err = svc.ConfirmReservation(ctx, confirm)
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.TypeAlreadyConfirmed, appErr.Type())
	assert.Equal(t, http.StatusConflict, appErr.Status)

	assert.Len(t, st.payments, 1)
	assert.Len(t, st.outbox, 1)
	assert.Equal(t, 1, gw.retrievals, "a recorded intent is not fetched again")
}

func TestConfirmReservation_CancelledReservation(t *testing.T) {
	st, gw, svc := newBookingFixture(t)
	room := st.addRoom(100, 10)
	ctx := context.Background()

	booked, err := svc.BookRoomOnline(ctx, bookRequest(room.ID))
	require.NoError(t, err)
	gw.settle(booked.PaymentIntentID)
	st.reservations[uuid.MustParse(booked.ReservationID)].Status = entity.ReservationStatusCancelled

	_, err = svc.ConfirmReservation(ctx, &request.ConfirmReservationRequest{PaymentIntentID: booked.PaymentIntentID})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.TypeReservationNotPending))
	assert.Empty(t, st.payments)
}

func TestConfirmReservation_MissingReservation(t *testing.T) {
	st, gw, svc := newBookingFixture(t)
	room := st.addRoom(100, 10)
	ctx := context.Background()

	booked, err := svc.BookRoomOnline(ctx, bookRequest(room.ID))
	require.NoError(t, err)
	gw.settle(booked.PaymentIntentID)
	delete(st.reservations, uuid.MustParse(booked.ReservationID))

	_, err = svc.ConfirmReservation(ctx, &request.ConfirmReservationRequest{PaymentIntentID: booked.PaymentIntentID})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.TypeReservationNotFound))
}

func TestConfirmReservation_UnknownIntent(t *testing.T) {
	_, _, svc := newBookingFixture(t)

	_, err := svc.ConfirmReservation(context.Background(), &request.ConfirmReservationRequest{PaymentIntentID: "pi_missing"})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.TypeServer))
}

func TestConfirmReservation_RecordedIntentSkipsGateway(t *testing.T) {
	st, gw, svc := newBookingFixture(t)
	room := st.addRoom(100, 10)
	ctx := context.Background()

	booked, err := svc.BookRoomOnline(ctx, bookRequest(room.ID))
	require.NoError(t, err)
	st.payments[booked.PaymentIntentID] = &entity.Payment{
		PaymentIntentID: booked.PaymentIntentID,
		Amount:          110,
		Status:          entity.PaymentStatusSucceeded,
		ReservationID:   uuid.MustParse(booked.ReservationID),
	}

	_, err = svc.ConfirmReservation(ctx, &request.ConfirmReservationRequest{PaymentIntentID: " " + booked.PaymentIntentID + " "})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.TypeAlreadyConfirmed))
	assert.Zero(t, gw.retrievals)
	assert.Empty(t, st.outbox)
}

func TestCreateReservation_ConfirmedWithoutPayment(t *testing.T) {
	st, gw, svc := newBookingFixture(t)
	room := st.addRoom(80, 8)
	guest := uuid.New()

	resp, err := svc.CreateReservation(context.Background(), guest, &request.ReservationRequest{
		RoomID:       room.ID.String(),
		CheckInDate:  "2026-12-01",
		CheckOutDate: "2026-12-02",
		Adults:       intPtr(1),
		Children:     intPtr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationStatusConfirmed, resp.Status)
	assert.Equal(t, guest.String(), resp.GuestID)
	assert.Equal(t, 80.0, resp.TotalAmount)
	assert.Nil(t, resp.PaymentID)
	assert.Empty(t, gw.created)
}

func TestCreateReservation_MalformedRoomID(t *testing.T) {
	_, _, svc := newBookingFixture(t)

	_, err := svc.CreateReservation(context.Background(), uuid.New(), &request.ReservationRequest{
		RoomID:       "101",
		CheckInDate:  "2026-12-01",
		CheckOutDate: "2026-12-02",
		Adults:       intPtr(1),
		Children:     intPtr(0),
	})
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.TypeRoomNotFound, appErr.Type())
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}
