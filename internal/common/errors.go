package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound           = errors.New("requested resource not found")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrBadRequest         = errors.New("bad request")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateUser      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("wrong credentials")
	ErrNotAuthor          = errors.New("you are not the author")
	ErrUpload             = errors.New("media upload failed")
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrDuplicateUser),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrNotAuthor):
		return http.StatusBadRequest
	case errors.Is(err, ErrUpload):
		return http.StatusInternalServerError
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}

// PublicMessage hides the details of unexpected failures from clients.
func PublicMessage(err error) string {
	if HTTPStatusFromError(err) == http.StatusInternalServerError && !errors.Is(err, ErrUpload) {
		return ErrInternalServer.Error()
	}
	return err.Error()
}

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
