package basehdl

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Aniket1026/yoto/internal/common"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createInput struct {
	Title string `json:"title" validate:"required,no_xss"`
}

func decode(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestErrorEnvelopeKeepsStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{common.ErrNotFound, 404},
		{common.ErrForbidden, 403},
		{common.ErrDuplicate.WithMessage("Username taken"), 409},
		{common.ErrTokenExpired, 401},
		{fiber.NewError(413, "Request Entity Too Large"), 413},
		{errors.New("driver exploded"), 500},
	}
	for _, tc := range cases {
		env := ErrorEnvelope(tc.err)
		assert.Equal(t, tc.status, env.StatusCode, tc.err.Error())
		assert.False(t, env.Success)
	}

	env := ErrorEnvelope(errors.New("secret connection string"))
	assert.Equal(t, common.MsgInternalError, env.Message)

	env = ErrorEnvelope(common.ErrMongoQuery.WithDetails(errors.New("raw driver text")))
	assert.Nil(t, env.Details)
}

func TestHandlersWriteEnvelope(t *testing.T) {
	app := fiber.New()
	app.Post("/items", func(c fiber.Ctx) error {
		var in createInput
		if err := ParseRequestBody(c, &in); err != nil {
			return HandleError(c, err)
		}
		return Respond(c, common.StatusCreated, in, common.MsgCreated)
	})
	app.Get("/items/:id", func(c fiber.Ctx) error {
		id, err := ParseObjectIDParam(c, "id")
		if err != nil {
			return HandleError(c, err)
		}
		return Respond(c, common.StatusOK, id.Hex(), common.MsgSuccess)
	})

	req := httptest.NewRequest("POST", "/items", strings.NewReader(`{"title":"Go basics"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
	body := decode(t, resp.Body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(201), body["statusCode"])

	req = httptest.NewRequest("POST", "/items", strings.NewReader(`{"title":"<script>x</script>"}`))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	body = decode(t, resp.Body)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, map[string]interface{}{"title": "no_xss"}, body["details"])

	resp, err = app.Test(httptest.NewRequest("GET", "/items/not-an-id", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/items/65a1b2c3d4e5f60718293a4b", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c fiber.Ctx) error {
		page, limit := ParsePagination(c)
		return c.JSON(fiber.Map{"page": page, "limit": limit})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/?page=-2&limit=1000", nil))
	require.NoError(t, err)
	body := decode(t, resp.Body)
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(100), body["limit"])
}

func TestHealthDegraded(t *testing.T) {
	app := fiber.New()
	h := NewSystemHandler(func(context.Context) error { return errors.New("no primary") })
	app.Get("/health", h.HandleHealth)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}
