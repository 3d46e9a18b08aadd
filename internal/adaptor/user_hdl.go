package adaptor

import (
	"net/http"
	"strconv"
	"strings"

	"hotel-management/internal/dto/request"
	"hotel-management/internal/usecase"
	"hotel-management/pkg/apperror"
	"hotel-management/pkg/upload"
	"hotel-management/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service  usecase.UserService
	uploader Uploader
	log      *zap.Logger
}

func NewUserHandler(service usecase.UserService, uploader Uploader, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service:  service,
		uploader: uploader,
		log:      log.With(zap.String("handler", "user")),
	}
}

// GetProfile handles GET /api/users/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseError(w, apperror.Unauthorized(apperror.TypeTokenMissing, "Not authorized, no token"))
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		handleServiceError(h.log, w, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved successfully", profile)
}

// AddUser handles POST /api/users/add (multipart or JSON)
func (h *UserHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	var req request.CreateUserRequest

	if isMultipart(r) {
		if err := parseMultipart(w, r); err != nil {
			handleServiceError(h.log, w, err, "add user")
			return
		}
		if err := createUserFromForm(r, &req); err != nil {
			handleServiceError(h.log, w, err, "add user")
			return
		}
	} else if err := decodeJSON(r, &req); err != nil {
		handleServiceError(h.log, w, err, "add user")
		return
	}

	if files := formFiles(r, "picture"); len(files) > 0 {
		path, err := h.uploader.Save("picture", upload.KindImage, files[0])
		if err != nil {
			handleServiceError(h.log, w, err, "add user")
			return
		}
		req.Picture = path
	}

	user, err := h.service.AddUser(r.Context(), &req)
	if err != nil {
		if req.Picture != "" {
			h.uploader.Remove(req.Picture)
		}
		handleServiceError(h.log, w, err, "add user")
		return
	}

	utils.ResponseCreated(w, "User added successfully", user)
}

func createUserFromForm(r *http.Request, req *request.CreateUserRequest) error {
	req.Name = formValue(r, "name")
	req.Email = formString(r, "email")
	req.Phone = formString(r, "phone")
	req.Password = formString(r, "password")
	req.Role = formValue(r, "role")
	req.Address = formString(r, "address")
	req.DOB = formString(r, "dob")
	req.MaritalStatus = formString(r, "maritalStatus")
	req.CNIC = formString(r, "cnic")

	var err error
	if req.IsActive, err = formBool(r, "isActive"); err != nil {
		return err
	}
	if _, err := formJSON(r, "emergencyContact", &req.EmergencyContact); err != nil {
		return err
	}
	if _, err := formJSON(r, "preferences", &req.Preferences); err != nil {
		return err
	}
	return nil
}

// GetUsers handles GET /api/users?page=&per_page=&isActive=1
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := &request.UserListRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(q.Get("page"), 1),
			PerPage: utils.ParseInt(q.Get("per_page"), 10),
		},
		ActiveOnly: isTruthy(q.Get("isActive")),
	}

	users, err := h.service.GetUsers(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "get users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved successfully", users)
}

// UpdateUser handles PUT /api/users/update (multipart or JSON)
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateUserRequest

	if isMultipart(r) {
		if err := parseMultipart(w, r); err != nil {
			handleServiceError(h.log, w, err, "update user")
			return
		}
		if err := updateUserFromForm(r, &req); err != nil {
			handleServiceError(h.log, w, err, "update user")
			return
		}
	} else if err := decodeJSON(r, &req); err != nil {
		handleServiceError(h.log, w, err, "update user")
		return
	}

	if files := formFiles(r, "picture"); len(files) > 0 {
		path, err := h.uploader.Save("picture", upload.KindImage, files[0])
		if err != nil {
			handleServiceError(h.log, w, err, "update user")
			return
		}
		req.Picture = &path
	}

	user, err := h.service.UpdateUser(r.Context(), &req)
	if err != nil {
		if req.Picture != nil {
			h.uploader.Remove(*req.Picture)
		}
		handleServiceError(h.log, w, err, "update user")
		return
	}

	utils.ResponseSuccess(w, "User updated successfully", user)
}

func updateUserFromForm(r *http.Request, req *request.UpdateUserRequest) error {
	req.UserID = formValue(r, "userId")
	req.Name = formString(r, "name")
	req.Email = formString(r, "email")
	req.Phone = formString(r, "phone")
	req.Password = formString(r, "password")
	req.Role = formString(r, "role")
	req.Address = formString(r, "address")
	req.DOB = formString(r, "dob")
	req.MaritalStatus = formString(r, "maritalStatus")
	req.CNIC = formString(r, "cnic")

	if _, err := formJSON(r, "emergencyContact", &req.EmergencyContact); err != nil {
		return err
	}
	if _, err := formJSON(r, "preferences", &req.Preferences); err != nil {
		return err
	}
	return nil
}

// SetActive handles PUT /api/users/deactivate?userId=&isActive=
func (h *UserHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := request.SetActiveRequest{UserID: strings.TrimSpace(q.Get("userId"))}
	if raw := q.Get("isActive"); raw != "" {
		active := isTruthy(raw)
		req.IsActive = &active
	} else {
		// without the flag the endpoint deactivates
		inactive := false
		req.IsActive = &inactive
	}

	user, err := h.service.SetActive(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "set user active")
		return
	}

	message := "User deactivated successfully"
	if user.IsActive {
		message = "User activated successfully"
	}
	utils.ResponseSuccess(w, message, user)
}

// DeleteUser handles DELETE /api/users/delete?userId=
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("userId"))
	if err := h.service.DeleteUser(r.Context(), userID); err != nil {
		handleServiceError(h.log, w, err, "delete user")
		return
	}

	utils.ResponseSuccess(w, "User deleted successfully", nil)
}

func isTruthy(raw string) bool {
	if raw == "1" {
		return true
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && b
}
