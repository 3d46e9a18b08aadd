package usecase

import (
	"context"

	"hotel-management/internal/data/entity"
	"hotel-management/internal/data/repository"
	"hotel-management/internal/dto/response"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type AdminService interface {
	Dashboard(ctx context.Context) (*response.DashboardResponse, error)
}

type adminService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAdminService(repo *repository.Repository, log *zap.Logger) AdminService {
	return &adminService{
		repo: repo,
		log:  log.With(zap.String("service", "admin")),
	}
}

// Dashboard gathers the headline counters concurrently.
func (s *adminService) Dashboard(ctx context.Context) (*response.DashboardResponse, error) {
	var out response.DashboardResponse
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		out.TotalRooms, err = s.repo.Room.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.TotalGuests, err = s.repo.User.CountByRole(gctx, entity.RoleGuest)
		return err
	})
	g.Go(func() (err error) {
		out.TotalReservations, err = s.repo.Reservation.CountByStatus(gctx, entity.ReservationStatusConfirmed)
		return err
	})
	g.Go(func() (err error) {
		out.AvailableRooms, err = s.repo.Room.CountByStatus(gctx, entity.RoomStatusAvailable)
		return err
	})
	g.Go(func() (err error) {
		out.TotalRevenue, err = s.repo.Payment.SumByStatus(gctx, entity.PaymentStatusSucceeded)
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.Error("Failed to build dashboard", zap.Error(err))
		return nil, err
	}
	return &out, nil
}
