package response

type DashboardResponse struct {
	TotalRooms        int64   `json:"totalRooms"`
	TotalGuests       int64   `json:"totalGuests"`
	TotalReservations int64   `json:"totalReservations"`
	AvailableRooms    int64   `json:"availableRooms"`
	TotalRevenue      float64 `json:"totalRevenue"`
}
