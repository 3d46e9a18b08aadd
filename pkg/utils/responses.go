package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"hotel-management/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Response struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
	StatusCode int    `json:"statusCode,omitempty"`
	Details    any    `json:"details,omitempty"`
}

// ResponseJSON writes the envelope with a custom status code
func ResponseJSON(w http.ResponseWriter, code int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resp)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// ------------- Error responses -------------

// ResponseError renders any error through the shared taxonomy.
func ResponseError(w http.ResponseWriter, err error) {
	appErr := ToAppError(err)
	ResponseJSON(w, appErr.Status, Response{
		Success:    false,
		Message:    appErr.Message,
		StatusCode: appErr.Status,
		Details:    appErr.Details,
	})
}

// ToAppError maps store, token and validator errors onto the taxonomy.
// Unknown errors become a generic 500.
func ToAppError(err error) *apperror.Error {
	if appErr, ok := apperror.As(err); ok {
		return appErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return apperror.New(http.StatusBadRequest, apperror.TypeDuplicateKey,
				"Duplicate field value entered", "constraint", pgErr.ConstraintName).Wrap(err)
		case "23503":
			return apperror.New(http.StatusBadRequest, apperror.TypeValidation,
				"Operation conflicts with a related record", "constraint", pgErr.ConstraintName).Wrap(err)
		case "23502", "23514", "22P02", "22007", "22008":
			return apperror.New(http.StatusBadRequest, apperror.TypeValidation, pgErr.Message).Wrap(err)
		}
	}

	if errors.Is(err, jwt.ErrTokenExpired) {
		return apperror.Unauthorized(apperror.TypeTokenExpired, "Token expired, please log in again").Wrap(err)
	}
	if isJWTError(err) {
		return apperror.Unauthorized(apperror.TypeInvalidToken, "Invalid token, please log in again").Wrap(err)
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return validationFailure(validationErrs)
	}

	return apperror.Internal(err)
}

func isJWTError(err error) bool {
	for _, target := range []error{
		jwt.ErrTokenMalformed,
		jwt.ErrTokenUnverifiable,
		jwt.ErrTokenSignatureInvalid,
		jwt.ErrTokenInvalidClaims,
		jwt.ErrTokenNotValidYet,
		jwt.ErrTokenUsedBeforeIssued,
		jwt.ErrTokenInvalidId,
		jwt.ErrTokenInvalidSubject,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
