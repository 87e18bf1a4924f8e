package api

import (
	"errors"
	"fmt"
)

// AuthError indicates that the bearer credential was rejected by the
// backend. It is returned whenever a request receives a 401 response.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error: %s", e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// StatusError is a non-401 error response from the backend, carrying the
// HTTP status code and the backend's detail message when it supplied one.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend error (%d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend error (%d)", e.StatusCode)
}

// errorResponse is the backend's standard error body shape.
type errorResponse struct {
	Detail string `json:"detail"`
}
