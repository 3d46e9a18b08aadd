package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net"
	"net/http"
	"strconv"
	"strings"

	"hotel-management/internal/dto/request"
	"hotel-management/pkg/apperror"
	"hotel-management/pkg/upload"
	"hotel-management/pkg/utils"

	"go.uber.org/zap"
)

const (
	maxMultipartMemory = 32 << 20
	maxRequestBytes    = 300 << 20
)

// Uploader stores multipart files and returns their public paths.
type Uploader interface {
	Save(field string, kind upload.Kind, fh *multipart.FileHeader) (string, error)
	SaveAll(field string, kind upload.Kind, files []*multipart.FileHeader) ([]string, error)
	Remove(publicPaths ...string)
}

func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	appErr := utils.ToAppError(err)
	if appErr.Status >= http.StatusInternalServerError {
		log.Error("Request failed", zap.String("operation", operation), zap.Error(err))
	} else {
		log.Debug("Request rejected",
			zap.String("operation", operation),
			zap.String("type", appErr.Type()),
			zap.Error(err))
	}
	utils.ResponseError(w, appErr)
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && strings.HasPrefix(mediaType, "multipart/")
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.MissingFields("Request body is required")
		}
		return apperror.Validation("Invalid request body", nil).Wrap(err)
	}
	return nil
}

func parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperror.New(http.StatusRequestEntityTooLarge, apperror.TypeInvalidFile, "Request too large").Wrap(err)
		}
		return apperror.Validation("Invalid multipart form", nil).Wrap(err)
	}
	return nil
}

// formString returns nil when the field is absent.
func formString(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := strings.TrimSpace(values[0])
	return &v
}

func formValue(r *http.Request, key string) string {
	if v := formString(r, key); v != nil {
		return *v
	}
	return ""
}

func formInt(r *http.Request, key string) (*int, error) {
	raw := formString(r, key)
	if raw == nil || *raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(*raw)
	if err != nil {
		return nil, apperror.Validation("Invalid "+key, map[string]string{key: "Must be a whole number"})
	}
	return &n, nil
}

func formFloat(r *http.Request, key string) (*float64, error) {
	raw := formString(r, key)
	if raw == nil || *raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(*raw, 64)
	if err != nil {
		return nil, apperror.Validation("Invalid "+key, map[string]string{key: "Must be a number"})
	}
	return &f, nil
}

func formBool(r *http.Request, key string) (*bool, error) {
	raw := formString(r, key)
	if raw == nil || *raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(*raw)
	if err != nil {
		return nil, apperror.Validation("Invalid "+key, map[string]string{key: "Must be true or false"})
	}
	return &b, nil
}

// formJSON decodes a field that carries a JSON document as text. It reports
// false when the field is absent.
func formJSON(r *http.Request, key string, dst any) (bool, error) {
	raw := formString(r, key)
	if raw == nil || *raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(*raw), dst); err != nil {
		return false, apperror.Validation("Invalid "+key, map[string]string{key: "Must be valid JSON"})
	}
	return true, nil
}

// formList accepts a JSON array, repeated fields or a comma separated list.
func formList(r *http.Request, key string) (*[]string, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok {
		return nil, nil
	}

	out := make([]string, 0)
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		if _, err := formJSON(r, key, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	for _, v := range values {
		out = append(out, splitComma(v)...)
	}
	return &out, nil
}

func formFiles(r *http.Request, key string) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	return r.MultipartForm.File[key]
}

func splitComma(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func sessionMeta(r *http.Request) request.SessionMeta {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return request.SessionMeta{
		UserAgent: r.UserAgent(),
		IPAddress: ip,
	}
}

func queryInt(raw, key string) (*int, error) {
	if raw = strings.TrimSpace(raw); raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperror.Validation("Invalid "+key, map[string]string{key: "Must be a whole number"})
	}
	return &n, nil
}

func queryFloat(raw, key string) (*float64, error) {
	if raw = strings.TrimSpace(raw); raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperror.Validation("Invalid "+key, map[string]string{key: "Must be a number"})
	}
	return &f, nil
}
