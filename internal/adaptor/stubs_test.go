package adaptor

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"hotel-management/internal/dto/request"
	"hotel-management/internal/dto/response"
	"hotel-management/pkg/upload"
	"hotel-management/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubRoomService struct {
	filter  request.RoomFilterRequest
	added   *request.CreateRoomRequest
	updated *request.UpdateRoomRequest
	err     error
}

func (s *stubRoomService) GetRooms(_ context.Context, req request.RoomFilterRequest) ([]response.RoomResponse, error) {
	s.filter = req
	return []response.RoomResponse{}, s.err
}

func (s *stubRoomService) GetRoom(_ context.Context, roomID string) (*response.RoomResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &response.RoomResponse{ID: roomID}, nil
}

func (s *stubRoomService) CheckAvailability(context.Context, *request.AvailabilityRequest) ([]response.RoomResponse, error) {
	return []response.RoomResponse{}, s.err
}

func (s *stubRoomService) AddRoom(_ context.Context, req *request.CreateRoomRequest) (*response.RoomResponse, error) {
	s.added = req
	if s.err != nil {
		return nil, s.err
	}
	return &response.RoomResponse{ID: uuid.NewString(), RoomNumber: req.RoomNumber, Thumbnail: req.Thumbnail, Pictures: req.Pictures}, nil
}

func (s *stubRoomService) UpdateRoom(_ context.Context, req *request.UpdateRoomRequest) (*response.RoomResponse, error) {
	s.updated = req
	if s.err != nil {
		return nil, s.err
	}
	return &response.RoomResponse{ID: req.RoomID}, nil
}

func (s *stubRoomService) UpdateStatus(_ context.Context, req *request.RoomStatusRequest) (*response.RoomResponse, error) {
	return &response.RoomResponse{ID: req.RoomID}, s.err
}

func (s *stubRoomService) DeleteRoom(context.Context, string) error {
	return s.err
}

type stubUploader struct {
	saved   []string
	removed []string
	err     error
}

func (u *stubUploader) Save(field string, kind upload.Kind, fh *multipart.FileHeader) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	p := "/uploads/" + string(kind) + "/" + field + "-" + fh.Filename
	u.saved = append(u.saved, p)
	return p, nil
}

func (u *stubUploader) SaveAll(field string, kind upload.Kind, files []*multipart.FileHeader) ([]string, error) {
	out := make([]string, 0, len(files))
	for _, fh := range files {
		p, err := u.Save(field, kind, fh)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (u *stubUploader) Remove(paths ...string) {
	u.removed = append(u.removed, paths...)
}

type stubBookingService struct {
	guest uuid.UUID
	err   error
}

func (s *stubBookingService) BookRoomOnline(_ context.Context, req *request.BookRoomRequest) (*response.BookingIntentResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &response.BookingIntentResponse{PaymentIntentID: "pi_1", ClientSecret: "secret", ReservationID: uuid.NewString()}, nil
}

func (s *stubBookingService) ConfirmReservation(_ context.Context, req *request.ConfirmReservationRequest) (*response.ReservationResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &response.ReservationResponse{ID: uuid.NewString(), Status: "confirmed"}, nil
}

func (s *stubBookingService) CreateReservation(_ context.Context, guestID uuid.UUID, req *request.ReservationRequest) (*response.ReservationResponse, error) {
	s.guest = guestID
	if s.err != nil {
		return nil, s.err
	}
	return &response.ReservationResponse{ID: uuid.NewString(), GuestID: guestID.String(), Status: "confirmed"}, nil
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (utils.Response, string) {
	t.Helper()
	var body utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	details, _ := body.Details.(map[string]any)
	typ, _ := details["type"].(string)
	return body, typ
}
