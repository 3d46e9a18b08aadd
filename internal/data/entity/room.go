package entity

type RoomType string

const (
	RoomTypeSingle RoomType = "single"
	RoomTypeDouble RoomType = "double"
	RoomTypeSuite  RoomType = "suite"
)

type BedSize string

const (
	BedSizeSingle BedSize = "single"
	BedSizeDouble BedSize = "double"
	BedSizeQueen  BedSize = "queen"
	BedSizeKing   BedSize = "king"
	BedSizeTwin   BedSize = "twin"
)

type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusReserved    RoomStatus = "reserved"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

type Room struct {
	Base
	RoomNumber string     `db:"room_number"`
	Type       RoomType   `db:"type"`
	Size       int        `db:"size"`
	BedSize    BedSize    `db:"bed_size"`
	View       string     `db:"view"`
	Price      float64    `db:"price"`
	Tax        float64    `db:"tax"`
	Status     RoomStatus `db:"status"`
	Amenities  []string   `db:"amenities"`
	Thumbnail  string     `db:"thumbnail"`
	Pictures   []string   `db:"pictures"`
	Videos     []string   `db:"videos"`
	MaxGuests  int        `db:"max_guests"`
}

// Total is the amount charged at booking: price plus tax. Reservations
// record the price alone.
func (r *Room) Total() float64 {
	return r.Price + r.Tax
}

// RoomFilter mirrors the catalogue query string. Zero values are ignored.
type RoomFilter struct {
	RoomNumber string
	Status     string
	Type       string
	Size       *int
	View       string
	StartPrice *float64
	EndPrice   *float64
	Amenities  []string
}
