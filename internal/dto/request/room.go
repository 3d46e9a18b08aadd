package request

type CreateRoomRequest struct {
	RoomNumber string   `json:"roomNumber" validate:"required,max=20"`
	Type       string   `json:"type" validate:"required,oneof=single double suite"`
	Size       *int     `json:"size" validate:"required,gt=0"`
	BedSize    string   `json:"bedSize" validate:"required,oneof=single double queen king twin"`
	View       string   `json:"view" validate:"required,oneof=sea city pool garden mountains river"`
	Price      *float64 `json:"price" validate:"required,gte=0"`
	Tax        *float64 `json:"tax" validate:"required,gte=0"`
	MaxGuests  *int     `json:"maxGuests" validate:"required,min=1,max=2"`
	Status     string   `json:"status,omitempty" validate:"omitempty,oneof=available reserved maintenance"`
	Amenities  []string `json:"amenities,omitempty"`

	Thumbnail string   `json:"-"`
	Pictures  []string `json:"-"`
	Videos    []string `json:"-"`
}

// UpdateRoomRequest changes only the fields that are set. RemovePictures is
// applied before the new uploads are appended.
type UpdateRoomRequest struct {
	RoomID         string    `json:"roomId" validate:"required"`
	RoomNumber     *string   `json:"roomNumber,omitempty" validate:"omitempty,min=1,max=20"`
	Type           *string   `json:"type,omitempty" validate:"omitempty,oneof=single double suite"`
	Size           *int      `json:"size,omitempty" validate:"omitempty,gt=0"`
	BedSize        *string   `json:"bedSize,omitempty" validate:"omitempty,oneof=single double queen king twin"`
	View           *string   `json:"view,omitempty" validate:"omitempty,oneof=sea city pool garden mountains river"`
	Price          *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Tax            *float64  `json:"tax,omitempty" validate:"omitempty,gte=0"`
	MaxGuests      *int      `json:"maxGuests,omitempty" validate:"omitempty,min=1,max=2"`
	Status         *string   `json:"status,omitempty" validate:"omitempty,oneof=available reserved maintenance"`
	Amenities      *[]string `json:"amenities,omitempty"`
	RemovePictures []string  `json:"removePictures,omitempty"`

	Thumbnail   *string  `json:"-"`
	NewPictures []string `json:"-"`
	NewVideos   []string `json:"-"`
}

type RoomStatusRequest struct {
	RoomID string `json:"roomId" validate:"required"`
	Status string `json:"status" validate:"required,oneof=available reserved maintenance"`
}

type RoomFilterRequest struct {
	RoomNumber string
	Status     string
	Type       string
	Size       *int
	View       string
	StartPrice *float64
	EndPrice   *float64
	Amenities  []string
}

type AvailabilityRequest struct {
	CheckInDate  string `json:"checkInDate" validate:"required"`
	CheckOutDate string `json:"checkOutDate" validate:"required"`
}
