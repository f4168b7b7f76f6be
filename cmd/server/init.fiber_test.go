package main

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	basehdl "github.com/Aniket1026/yoto/internal/api/base/handler"
	"github.com/Aniket1026/yoto/internal/common"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandlerKeepsStatus(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	failWith := map[string]error{
		"/conflict":  common.ErrDuplicate.WithMessage("User with email or username already exists"),
		"/forbidden": common.ErrForbidden,
		"/fiber":     fiber.NewError(fiber.StatusRequestEntityTooLarge, "Request Entity Too Large"),
		"/untyped":   errors.New("driver exploded"),
	}
	for path, err := range failWith {
		err := err
		app.Get(path, func(c fiber.Ctx) error { return err })
	}

	tests := []struct {
		path    string
		status  int
		message string
	}{
		{"/conflict", fiber.StatusConflict, "User with email or username already exists"},
		{"/forbidden", fiber.StatusForbidden, common.MsgForbidden},
		{"/fiber", fiber.StatusRequestEntityTooLarge, "Request Entity Too Large"},
		{"/untyped", fiber.StatusInternalServerError, common.MsgInternalError},
		{"/missing", fiber.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body basehdl.ApiError
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.status, body.StatusCode)
			assert.False(t, body.Success)
			if tt.message != "" {
				assert.Equal(t, tt.message, body.Message)
			}
		})
	}
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, splitOrigins(""))
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, splitOrigins("https://a.test, https://b.test"))
}
