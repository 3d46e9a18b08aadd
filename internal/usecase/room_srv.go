package usecase

import (
	"context"
	"strings"
	"time"

	"hotel-management/internal/data/entity"
	"hotel-management/internal/data/repository"
	"hotel-management/internal/dto/request"
	"hotel-management/internal/dto/response"
	"hotel-management/pkg/apperror"
	"hotel-management/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MediaStore removes stored uploads that rooms or users no longer reference.
type MediaStore interface {
	Remove(publicPaths ...string)
}

type RoomService interface {
	GetRooms(ctx context.Context, req request.RoomFilterRequest) ([]response.RoomResponse, error)
	GetRoom(ctx context.Context, roomID string) (*response.RoomResponse, error)
	CheckAvailability(ctx context.Context, req *request.AvailabilityRequest) ([]response.RoomResponse, error)
	AddRoom(ctx context.Context, req *request.CreateRoomRequest) (*response.RoomResponse, error)
	UpdateRoom(ctx context.Context, req *request.UpdateRoomRequest) (*response.RoomResponse, error)
	UpdateStatus(ctx context.Context, req *request.RoomStatusRequest) (*response.RoomResponse, error)
	DeleteRoom(ctx context.Context, roomID string) error
}

type roomService struct {
	repo  *repository.Repository
	media MediaStore
	log   *zap.Logger
}

func NewRoomService(repo *repository.Repository, media MediaStore, log *zap.Logger) RoomService {
	return &roomService{
		repo:  repo,
		media: media,
		log:   log.With(zap.String("service", "room")),
	}
}

func (s *roomService) GetRooms(ctx context.Context, req request.RoomFilterRequest) ([]response.RoomResponse, error) {
	amenities := make([]string, 0, len(req.Amenities))
	for _, a := range req.Amenities {
		if a = strings.TrimSpace(a); a != "" {
			amenities = append(amenities, a)
		}
	}

	rooms, err := s.repo.Room.FindAll(ctx, entity.RoomFilter{
		RoomNumber: strings.TrimSpace(req.RoomNumber),
		Status:     req.Status,
		Type:       req.Type,
		Size:       req.Size,
		View:       strings.TrimSpace(req.View),
		StartPrice: req.StartPrice,
		EndPrice:   req.EndPrice,
		Amenities:  amenities,
	})
	if err != nil {
		return nil, err
	}
	return response.RoomsToResponse(rooms), nil
}

func (s *roomService) GetRoom(ctx context.Context, roomID string) (*response.RoomResponse, error) {
	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	resp := response.RoomToResponse(room)
	return &resp, nil
}

// CheckAvailability lists rooms without any reservation touching the
// range. Room status is not consulted.
func (s *roomService) CheckAvailability(ctx context.Context, req *request.AvailabilityRequest) ([]response.RoomResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	// Identical inputs are rejected as sent. Two times on the same day are a
	// one-day query since both bounds are inclusive.
	if strings.TrimSpace(req.CheckInDate) == strings.TrimSpace(req.CheckOutDate) {
		return nil, apperror.InvalidDates("Check-in and check-out dates cannot be the same")
	}

	checkIn, checkOut, err := parseStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	rooms, err := s.repo.Room.FindAvailable(ctx, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	s.log.Debug("Availability checked",
		zap.Time("check_in", checkIn),
		zap.Time("check_out", checkOut),
		zap.Int("available", len(rooms)))

	return response.RoomsToResponse(rooms), nil
}

func (s *roomService) AddRoom(ctx context.Context, req *request.CreateRoomRequest) (*response.RoomResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}
	if req.Thumbnail == "" || len(req.Pictures) == 0 {
		return nil, apperror.MissingFields("Thumbnail and pictures are required", "thumbnail", "pictures")
	}

	status := entity.RoomStatusAvailable
	if req.Status != "" {
		status = entity.RoomStatus(req.Status)
	}

	now := time.Now()
	room := &entity.Room{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		RoomNumber: strings.TrimSpace(req.RoomNumber),
		Type:       entity.RoomType(req.Type),
		Size:       *req.Size,
		BedSize:    entity.BedSize(req.BedSize),
		View:       req.View,
		Price:      *req.Price,
		Tax:        *req.Tax,
		Status:     status,
		Amenities:  req.Amenities,
		Thumbnail:  req.Thumbnail,
		Pictures:   req.Pictures,
		Videos:     req.Videos,
		MaxGuests:  *req.MaxGuests,
	}

	if err := s.repo.Room.Create(ctx, room); err != nil {
		return nil, err
	}

	s.log.Info("Room added",
		zap.String("room_id", room.ID.String()),
		zap.String("room_number", room.RoomNumber))

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) UpdateRoom(ctx context.Context, req *request.UpdateRoomRequest) (*response.RoomResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	room, err := s.findRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	if req.RoomNumber != nil {
		room.RoomNumber = strings.TrimSpace(*req.RoomNumber)
	}
	if req.Type != nil {
		room.Type = entity.RoomType(*req.Type)
	}
	if req.Size != nil {
		room.Size = *req.Size
	}
	if req.BedSize != nil {
		room.BedSize = entity.BedSize(*req.BedSize)
	}
	if req.View != nil {
		room.View = *req.View
	}
	if req.Price != nil {
		room.Price = *req.Price
	}
	if req.Tax != nil {
		room.Tax = *req.Tax
	}
	if req.MaxGuests != nil {
		room.MaxGuests = *req.MaxGuests
	}
	if req.Status != nil {
		room.Status = entity.RoomStatus(*req.Status)
	}
	if req.Amenities != nil {
		room.Amenities = *req.Amenities
	}

	var discarded []string
	if req.Thumbnail != nil {
		if room.Thumbnail != "" {
			discarded = append(discarded, room.Thumbnail)
		}
		room.Thumbnail = *req.Thumbnail
	}
	if len(req.RemovePictures) > 0 {
		var removed []string
		room.Pictures, removed = without(room.Pictures, req.RemovePictures)
		discarded = append(discarded, removed...)
	}
	room.Pictures = append(room.Pictures, req.NewPictures...)
	room.Videos = append(room.Videos, req.NewVideos...)
	room.UpdatedAt = time.Now()

	if err := s.repo.Room.Update(ctx, room); err != nil {
		return nil, err
	}

	if len(discarded) > 0 && s.media != nil {
		s.media.Remove(discarded...)
	}

	s.log.Info("Room updated", zap.String("room_id", room.ID.String()))

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) UpdateStatus(ctx context.Context, req *request.RoomStatusRequest) (*response.RoomResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(req.RoomID)
	if err != nil {
		return nil, apperror.NotFound(apperror.TypeRoomNotFound, "Room not found")
	}

	room, err := s.repo.Room.UpdateStatus(ctx, id, entity.RoomStatus(req.Status))
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, apperror.NotFound(apperror.TypeRoomNotFound, "Room not found")
	}

	s.log.Info("Room status changed",
		zap.String("room_id", room.ID.String()),
		zap.String("status", string(room.Status)))

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) DeleteRoom(ctx context.Context, roomID string) error {
	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Room.Delete(ctx, room.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound(apperror.TypeRoomNotFound, "Room not found")
	}

	if s.media != nil {
		media := append([]string{room.Thumbnail}, room.Pictures...)
		s.media.Remove(append(media, room.Videos...)...)
	}

	s.log.Info("Room deleted", zap.String("room_id", room.ID.String()))
	return nil
}

func (s *roomService) findRoom(ctx context.Context, roomID string) (*entity.Room, error) {
	if strings.TrimSpace(roomID) == "" {
		return nil, apperror.MissingFields("Room id is required", "roomId")
	}
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

// without returns values minus drop, plus the entries that were dropped.
func without(values, drop []string) (kept, removed []string) {
	skip := make(map[string]bool, len(drop))
	for _, d := range drop {
		skip[d] = true
	}
	kept = make([]string, 0, len(values))
	for _, v := range values {
		if skip[v] {
			removed = append(removed, v)
			continue
		}
		kept = append(kept, v)
	}
	return kept, removed
}

func parseStay(checkInRaw, checkOutRaw string) (time.Time, time.Time, error) {
	checkIn, err := utils.ParseDate(checkInRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.InvalidDates("Invalid check-in date")
	}
	checkOut, err := utils.ParseDate(checkOutRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.InvalidDates("Invalid check-out date")
	}
	return checkIn, checkOut, nil
}
