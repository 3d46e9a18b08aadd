package wire

import (
	"net/http"

	"hotel-management/internal/adaptor"
	"hotel-management/internal/data/repository"
	"hotel-management/internal/gateway"
	"hotel-management/internal/usecase"
	"hotel-management/pkg/middleware"
	"hotel-management/pkg/upload"
	"hotel-management/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Deps are the process-wide resources the HTTP layer is built from.
type Deps struct {
	Repo     *repository.Repository
	Payments gateway.PaymentGateway
	Uploads  *upload.Manager
	Redis    *redis.Client
	Config   *utils.Config
	Logger   *zap.Logger
}

type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

func Wiring(deps Deps) *App {
	service := usecase.NewService(deps.Repo, deps.Payments, deps.Uploads, deps.Config, deps.Logger)
	handler := adaptor.NewHandler(service, deps.Uploads, deps.Logger)

	return &App{
		Router:  setupRouter(handler, deps),
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, deps Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Recover(deps.Logger))
	r.Use(middleware.CORS(deps.Config.App.CORSOrigins))

	guard := routeGuards{
		auth:      middleware.AuthSession(deps.Config.JWT.Secret, deps.Repo.Session, deps.Repo.User, deps.Logger),
		admin:     middleware.Admin(deps.Logger),
		rateLimit: middleware.RateLimit(deps.Config.RateLimit, deps.Redis, deps.Logger),
	}

	wireAuth(r, handler.Auth, guard)
	wireRoom(r, handler.Room, handler.Booking, guard)
	wireUser(r, handler.User, guard)
	wireAdmin(r, handler.Admin, guard)

	if deps.Uploads != nil {
		files := http.StripPrefix(upload.PublicPrefix+"/", http.FileServer(http.Dir(deps.Uploads.Dir())))
		r.Handle(upload.PublicPrefix+"/*", files)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", nil)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseJSON(w, http.StatusNotFound, utils.Response{
			Success:    false,
			Message:    "Route not found",
			StatusCode: http.StatusNotFound,
		})
	})

	return r
}

type routeGuards struct {
	auth      func(http.Handler) http.Handler
	admin     func(http.Handler) http.Handler
	rateLimit func(http.Handler) http.Handler
}
