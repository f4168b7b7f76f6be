package basehdl

import (
	"errors"
	"fmt"

	"github.com/Aniket1026/yoto/internal/common"

	"github.com/gofiber/fiber/v3"
)

// ApiResponse is the envelope every endpoint returns.
type ApiResponse struct {
	StatusCode int         `json:"statusCode"`
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
}

// ApiError is the envelope for failures. StatusCode is the real HTTP status.
type ApiError struct {
	StatusCode int         `json:"statusCode"`
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	ErrorCode  string      `json:"errorCode,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

// JSONResponse writes data as JSON with an explicit utf-8 charset.
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// Respond writes a success envelope with the given status and message.
func Respond(c fiber.Ctx, statusCode int, data interface{}, message string) error {
	return JSONResponse(c, statusCode, ApiResponse{
		StatusCode: statusCode,
		Success:    statusCode < 400,
		Data:       data,
		Message:    message,
	})
}

// HandleError maps err to the error envelope keeping its status code.
// Untyped errors become 500 without exposing their text.
func HandleError(c fiber.Ctx, err error) error {
	resp := ErrorEnvelope(err)
	return JSONResponse(c, resp.StatusCode, resp)
}

// ErrorEnvelope builds the failure body for err.
func ErrorEnvelope(err error) ApiError {
	var typed *common.Error
	if errors.As(err, &typed) {
		status := typed.StatusCode
		if status == 0 {
			status = common.StatusInternalServerError
		}
		return ApiError{
			StatusCode: status,
			Success:    false,
			Message:    typed.Message,
			ErrorCode:  typed.Code.Code,
			Details:    publicDetails(typed.Details, status),
		}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ApiError{
			StatusCode: fiberErr.Code,
			Success:    false,
			Message:    fiberErr.Message,
		}
	}

	return ApiError{
		StatusCode: common.StatusInternalServerError,
		Success:    false,
		Message:    common.MsgInternalError,
		ErrorCode:  common.ErrCodeInternalServer.Code,
	}
}

// publicDetails hides wrapped driver errors on 5xx responses.
func publicDetails(details interface{}, status int) interface{} {
	switch d := details.(type) {
	case nil:
		return nil
	case error:
		if status >= 500 {
			return nil
		}
		return d.Error()
	case fmt.Stringer:
		return d.String()
	default:
		return d
	}
}
