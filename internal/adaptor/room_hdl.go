package adaptor

import (
	"net/http"
	"strings"

	"hotel-management/internal/dto/request"
	"hotel-management/internal/usecase"
	"hotel-management/pkg/apperror"
	"hotel-management/pkg/upload"
	"hotel-management/pkg/utils"

	"go.uber.org/zap"
)

type RoomHandler struct {
	service  usecase.RoomService
	uploader Uploader
	log      *zap.Logger
}

func NewRoomHandler(service usecase.RoomService, uploader Uploader, log *zap.Logger) *RoomHandler {
	return &RoomHandler{
		service:  service,
		uploader: uploader,
		log:      log.With(zap.String("handler", "room")),
	}
}

// GetRooms handles GET /api/rooms
func (h *RoomHandler) GetRooms(w http.ResponseWriter, r *http.Request) {
	req, err := roomFilterFromQuery(r)
	if err != nil {
		handleServiceError(h.log, w, err, "get rooms")
		return
	}

	rooms, err := h.service.GetRooms(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "get rooms")
		return
	}

	utils.ResponseSuccess(w, "Rooms retrieved successfully", rooms)
}

func roomFilterFromQuery(r *http.Request) (request.RoomFilterRequest, error) {
	q := r.URL.Query()
	req := request.RoomFilterRequest{
		RoomNumber: q.Get("roomNumber"),
		Status:     q.Get("status"),
		Type:       q.Get("type"),
		View:       q.Get("view"),
		Amenities:  splitComma(q.Get("amenities")),
	}

	var err error
	if req.Size, err = queryInt(q.Get("size"), "size"); err != nil {
		return req, err
	}
	if req.StartPrice, err = queryFloat(q.Get("startPrice"), "startPrice"); err != nil {
		return req, err
	}
	if req.EndPrice, err = queryFloat(q.Get("endPrice"), "endPrice"); err != nil {
		return req, err
	}
	return req, nil
}

// GetRoom handles GET /api/rooms/single?roomId=
func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.service.GetRoom(r.Context(), r.URL.Query().Get("roomId"))
	if err != nil {
		handleServiceError(h.log, w, err, "get room")
		return
	}

	utils.ResponseSuccess(w, "Room retrieved successfully", room)
}

// CheckAvailability handles GET /api/rooms/checkAvailability
func (h *RoomHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	req := request.AvailabilityRequest{
		CheckInDate:  r.URL.Query().Get("checkInDate"),
		CheckOutDate: r.URL.Query().Get("checkOutDate"),
	}

	rooms, err := h.service.CheckAvailability(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "check availability")
		return
	}

	utils.ResponseSuccess(w, "Available rooms retrieved successfully", rooms)
}

// AddRoom handles POST /api/rooms/addRoom (multipart)
func (h *RoomHandler) AddRoom(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(w, r); err != nil {
		handleServiceError(h.log, w, err, "add room")
		return
	}

	req, err := createRoomFromForm(r)
	if err != nil {
		handleServiceError(h.log, w, err, "add room")
		return
	}
	if err := utils.Validate(req); err != nil {
		handleServiceError(h.log, w, err, "add room")
		return
	}

	thumbnails := formFiles(r, "thumbnail")
	pictures := formFiles(r, "pictures")
	if len(thumbnails) == 0 || len(pictures) == 0 {
		handleServiceError(h.log, w, apperror.MissingFields("Thumbnail and pictures are required", "thumbnail", "pictures"), "add room")
		return
	}

	var stored []string
	fail := func(err error) {
		h.uploader.Remove(stored...)
		handleServiceError(h.log, w, err, "add room")
	}

	if req.Thumbnail, err = h.uploader.Save("thumbnail", upload.KindImage, thumbnails[0]); err != nil {
		fail(err)
		return
	}
	stored = append(stored, req.Thumbnail)

	if req.Pictures, err = h.uploader.SaveAll("pictures", upload.KindImage, pictures); err != nil {
		fail(err)
		return
	}
	stored = append(stored, req.Pictures...)

	if req.Videos, err = h.uploader.SaveAll("videos", upload.KindVideo, formFiles(r, "videos")); err != nil {
		fail(err)
		return
	}
	stored = append(stored, req.Videos...)

	room, err := h.service.AddRoom(r.Context(), req)
	if err != nil {
		fail(err)
		return
	}

	utils.ResponseCreated(w, "Room added successfully", room)
}

func createRoomFromForm(r *http.Request) (*request.CreateRoomRequest, error) {
	req := &request.CreateRoomRequest{
		RoomNumber: formValue(r, "roomNumber"),
		Type:       formValue(r, "type"),
		BedSize:    formValue(r, "bedSize"),
		View:       formValue(r, "view"),
		Status:     formValue(r, "status"),
	}

	var err error
	if req.Size, err = formInt(r, "size"); err != nil {
		return nil, err
	}
	if req.MaxGuests, err = formInt(r, "maxGuests"); err != nil {
		return nil, err
	}
	if req.Price, err = formFloat(r, "price"); err != nil {
		return nil, err
	}
	if req.Tax, err = formFloat(r, "tax"); err != nil {
		return nil, err
	}
	amenities, err := formList(r, "amenities")
	if err != nil {
		return nil, err
	}
	if amenities != nil {
		req.Amenities = *amenities
	}
	return req, nil
}

// UpdateRoom handles PUT /api/rooms/update. New files may be sent as
// multipart; plain field changes may also come as JSON.
func (h *RoomHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateRoomRequest

	if !isMultipart(r) {
		if err := decodeJSON(r, &req); err != nil {
			handleServiceError(h.log, w, err, "update room")
			return
		}
		h.updateRoom(w, r, &req, nil)
		return
	}

	if err := parseMultipart(w, r); err != nil {
		handleServiceError(h.log, w, err, "update room")
		return
	}
	if err := updateRoomFromForm(r, &req); err != nil {
		handleServiceError(h.log, w, err, "update room")
		return
	}
	if err := utils.Validate(&req); err != nil {
		handleServiceError(h.log, w, err, "update room")
		return
	}

	var stored []string
	if files := formFiles(r, "thumbnail"); len(files) > 0 {
		path, err := h.uploader.Save("thumbnail", upload.KindImage, files[0])
		if err != nil {
			handleServiceError(h.log, w, err, "update room")
			return
		}
		req.Thumbnail = &path
		stored = append(stored, path)
	}

	var err error
	if req.NewPictures, err = h.uploader.SaveAll("pictures", upload.KindImage, formFiles(r, "pictures")); err != nil {
		h.uploader.Remove(stored...)
		handleServiceError(h.log, w, err, "update room")
		return
	}
	stored = append(stored, req.NewPictures...)

	if req.NewVideos, err = h.uploader.SaveAll("videos", upload.KindVideo, formFiles(r, "videos")); err != nil {
		h.uploader.Remove(stored...)
		handleServiceError(h.log, w, err, "update room")
		return
	}
	stored = append(stored, req.NewVideos...)

	h.updateRoom(w, r, &req, stored)
}

func (h *RoomHandler) updateRoom(w http.ResponseWriter, r *http.Request, req *request.UpdateRoomRequest, stored []string) {
	room, err := h.service.UpdateRoom(r.Context(), req)
	if err != nil {
		h.uploader.Remove(stored...)
		handleServiceError(h.log, w, err, "update room")
		return
	}

	utils.ResponseSuccess(w, "Room updated successfully", room)
}

func updateRoomFromForm(r *http.Request, req *request.UpdateRoomRequest) error {
	req.RoomID = formValue(r, "roomId")
	req.RoomNumber = formString(r, "roomNumber")
	req.Type = formString(r, "type")
	req.BedSize = formString(r, "bedSize")
	req.View = formString(r, "view")
	req.Status = formString(r, "status")

	var err error
	if req.Size, err = formInt(r, "size"); err != nil {
		return err
	}
	if req.MaxGuests, err = formInt(r, "maxGuests"); err != nil {
		return err
	}
	if req.Price, err = formFloat(r, "price"); err != nil {
		return err
	}
	if req.Tax, err = formFloat(r, "tax"); err != nil {
		return err
	}
	if req.Amenities, err = formList(r, "amenities"); err != nil {
		return err
	}
	remove, err := formList(r, "removePictures")
	if err != nil {
		return err
	}
	if remove != nil {
		req.RemovePictures = *remove
	}
	return nil
}

// UpdateStatus handles PUT /api/rooms/roomStatus
func (h *RoomHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req request.RoomStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(h.log, w, err, "update room status")
		return
	}

	room, err := h.service.UpdateStatus(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update room status")
		return
	}

	utils.ResponseSuccess(w, "Room status updated successfully", room)
}

// DeleteRoom handles DELETE /api/rooms/delete?roomId=
func (h *RoomHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	roomID := strings.TrimSpace(r.URL.Query().Get("roomId"))
	if err := h.service.DeleteRoom(r.Context(), roomID); err != nil {
		handleServiceError(h.log, w, err, "delete room")
		return
	}

	utils.ResponseSuccess(w, "Room deleted successfully", nil)
}
