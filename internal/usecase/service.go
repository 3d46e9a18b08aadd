package usecase

import (
	"hotel-management/internal/data/repository"
	"hotel-management/internal/gateway"
	"hotel-management/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Room    RoomService
	Booking BookingService
	Admin   AdminService
}

func NewService(repo *repository.Repository, payments gateway.PaymentGateway, media MediaStore, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		User:    NewUserService(repo.User, repo.Session, media, log),
		Room:    NewRoomService(repo, media, log),
		Booking: NewBookingService(repo, payments, config.Stripe.Currency, log),
		Admin:   NewAdminService(repo, log),
	}
}
