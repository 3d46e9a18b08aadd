package response

import (
	"time"

	"hotel-management/internal/data/entity"
)

type RoomResponse struct {
	ID         string            `json:"id"`
	RoomNumber string            `json:"roomNumber"`
	Type       entity.RoomType   `json:"type"`
	Size       int               `json:"size"`
	BedSize    entity.BedSize    `json:"bedSize"`
	View       string            `json:"view"`
	Price      float64           `json:"price"`
	Tax        float64           `json:"tax"`
	Status     entity.RoomStatus `json:"status"`
	Amenities  []string          `json:"amenities"`
	Thumbnail  string            `json:"thumbnail"`
	Pictures   []string          `json:"pictures"`
	Videos     []string          `json:"videos"`
	MaxGuests  int               `json:"maxGuests"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

func RoomToResponse(room *entity.Room) RoomResponse {
	return RoomResponse{
		ID:         room.ID.String(),
		RoomNumber: room.RoomNumber,
		Type:       room.Type,
		Size:       room.Size,
		BedSize:    room.BedSize,
		View:       room.View,
		Price:      room.Price,
		Tax:        room.Tax,
		Status:     room.Status,
		Amenities:  emptyIfNil(room.Amenities),
		Thumbnail:  room.Thumbnail,
		Pictures:   emptyIfNil(room.Pictures),
		Videos:     emptyIfNil(room.Videos),
		MaxGuests:  room.MaxGuests,
		CreatedAt:  room.CreatedAt,
		UpdatedAt:  room.UpdatedAt,
	}
}

func RoomsToResponse(rooms []*entity.Room) []RoomResponse {
	out := make([]RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, RoomToResponse(r))
	}
	return out
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
