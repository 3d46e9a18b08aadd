package adaptor

import (
	"net/http"

	"hotel-management/internal/dto/request"
	"hotel-management/internal/usecase"
	"hotel-management/pkg/apperror"
	"hotel-management/pkg/upload"
	"hotel-management/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service  usecase.AuthService
	uploader Uploader
	log      *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, uploader Uploader, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service:  service,
		uploader: uploader,
		log:      log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /api/auth/register. It takes a multipart form with
// an optional picture, or a plain JSON body.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest

	if isMultipart(r) {
		if err := parseMultipart(w, r); err != nil {
			handleServiceError(h.log, w, err, "register")
			return
		}
		req.Name = formValue(r, "name")
		req.Email = formValue(r, "email")
		req.Password = formValue(r, "password")
		req.Phone = formString(r, "phone")
		if _, err := formJSON(r, "preferences", &req.Preferences); err != nil {
			handleServiceError(h.log, w, err, "register")
			return
		}
	} else if err := decodeJSON(r, &req); err != nil {
		handleServiceError(h.log, w, err, "register")
		return
	}

	if err := utils.Validate(&req); err != nil {
		handleServiceError(h.log, w, err, "register")
		return
	}

	if files := formFiles(r, "picture"); len(files) > 0 {
		path, err := h.uploader.Save("picture", upload.KindImage, files[0])
		if err != nil {
			handleServiceError(h.log, w, err, "register")
			return
		}
		req.Picture = path
	}

	resp, err := h.service.Register(r.Context(), &req, sessionMeta(r))
	if err != nil {
		if req.Picture != "" {
			h.uploader.Remove(req.Picture)
		}
		handleServiceError(h.log, w, err, "register")
		return
	}

	utils.ResponseCreated(w, "User registered successfully", resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(h.log, w, err, "login")
		return
	}

	resp, err := h.service.Login(r.Context(), &req, sessionMeta(r))
	if err != nil {
		handleServiceError(h.log, w, err, "login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", resp)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		utils.ResponseError(w, apperror.Unauthorized(apperror.TypeTokenMissing, "Not authorized, no token"))
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		handleServiceError(h.log, w, err, "logout")
		return
	}

	utils.ResponseSuccess(w, "Logout successful", nil)
}
