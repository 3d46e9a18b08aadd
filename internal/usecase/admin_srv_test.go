package usecase

import (
	"context"
	"testing"

	"hotel-management/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	st := newStore()
	st.addRoom(100, 10)
	busy := st.addRoom(100, 10)
	busy.Status = entity.RoomStatusReserved

	st.users[uuid.New()] = &entity.User{Role: entity.RoleGuest}
	st.users[uuid.New()] = &entity.User{Role: entity.RoleGuest}
	st.users[uuid.New()] = &entity.User{Role: entity.RoleReceptionist}

	st.reservations[uuid.New()] = &entity.Reservation{Status: entity.ReservationStatusConfirmed}
	st.reservations[uuid.New()] = &entity.Reservation{Status: entity.ReservationStatusPending}

	st.payments["pi_1"] = &entity.Payment{Amount: 110, Status: entity.PaymentStatusSucceeded}
	st.payments["pi_2"] = &entity.Payment{Amount: 55.5, Status: entity.PaymentStatusSucceeded}
	st.payments["pi_3"] = &entity.Payment{Amount: 999, Status: "canceled"}

	svc := NewAdminService(st.repository(), testLogger())
	dash, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), dash.TotalRooms)
	assert.Equal(t, int64(1), dash.AvailableRooms)
	assert.Equal(t, int64(2), dash.TotalGuests)
	assert.Equal(t, int64(1), dash.TotalReservations)
	assert.InDelta(t, 165.5, dash.TotalRevenue, 0.001)
}
