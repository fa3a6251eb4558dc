package response

import "github.com/labstack/echo/v4"

// Stable error codes clients branch on. The human-readable message may change;
// these must not.
const (
	CodeValidationFailed   = "validation_failed"
	CodeUnauthorized       = "unauthorized"
	CodeInvalidCredentials = "invalid_credentials"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeEmailExists        = "email_exists"
	CodeInvalidMedia       = "invalid_media"
	CodeUploadFailed       = "upload_failed"
	CodeInternal           = "internal_error"
)

// ErrorBody is the wire shape of every error response.
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error writes a {message, code} error payload with the given status.
func Error(c echo.Context, status int, code, message string) error {
	return c.JSON(status, ErrorBody{Message: message, Code: code})
}

// Success is the body of mutations that return no resource.
type Success struct {
	Success bool `json:"success"`
}

// OK reports a bodyless mutation as {"success": true}.
func OK(c echo.Context, status int) error {
	return c.JSON(status, Success{Success: true})
}
