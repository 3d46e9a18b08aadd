package adaptor

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotel-management/pkg/apperror"
	"hotel-management/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBookRoomOnline(t *testing.T) {
	h := NewBookingHandler(&stubBookingService{}, zap.NewNop())

	rec := httptest.NewRecorder()
	h.BookRoomOnline(rec, httptest.NewRequest(http.MethodPost, "/api/rooms/book", strings.NewReader(`{"roomId":"x"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)
	body, _ := decodeEnvelope(t, rec)
	data := body.Data.(map[string]any)
	assert.Equal(t, "pi_1", data["paymentIntentId"])
	assert.Equal(t, "secret", data["clientSecret"])

	rec = httptest.NewRecorder()
	h.BookRoomOnline(rec, httptest.NewRequest(http.MethodPost, "/api/rooms/book", strings.NewReader("")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	_, typ := decodeEnvelope(t, rec)
	assert.Equal(t, apperror.TypeRequiredFields, typ)

	rec = httptest.NewRecorder()
	h.BookRoomOnline(rec, httptest.NewRequest(http.MethodPost, "/api/rooms/book", strings.NewReader("{not json")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	_, typ = decodeEnvelope(t, rec)
	assert.Equal(t, apperror.TypeValidation, typ)
}

func TestConfirmReservation_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		typ    string
	}{
		{name: "confirmed", status: http.StatusCreated},
		{name: "unpaid", err: apperror.PaymentFailed("requires_payment_method"), status: http.StatusBadRequest, typ: apperror.TypePaymentFailed},
		{name: "repeat", err: apperror.Conflict(apperror.TypeAlreadyConfirmed, "Reservation already confirmed"), status: http.StatusConflict, typ: apperror.TypeAlreadyConfirmed},
		{name: "gateway down", err: apperror.Internal(assert.AnError), status: http.StatusInternalServerError, typ: apperror.TypeServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewBookingHandler(&stubBookingService{err: tt.err}, zap.NewNop())
			rec := httptest.NewRecorder()
			h.ConfirmReservation(rec, httptest.NewRequest(http.MethodPost, "/api/rooms/confirm", strings.NewReader(`{"paymentIntentId":"pi_1"}`)))

			assert.Equal(t, tt.status, rec.Code)
			_, typ := decodeEnvelope(t, rec)
			assert.Equal(t, tt.typ, typ)
		})
	}
}

func TestCreateReservation_UsesSignedInGuest(t *testing.T) {
	svc := &stubBookingService{}
	h := NewBookingHandler(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	h.CreateReservation(rec, httptest.NewRequest(http.MethodPost, "/api/rooms/reservation", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	guest := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/rooms/reservation", strings.NewReader(`{"roomId":"x"}`))
	req = req.WithContext(utils.SetUserContext(req.Context(), guest, "guest"))
	rec = httptest.NewRecorder()
	h.CreateReservation(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, guest, svc.guest)
}
