// Package basehdl holds the handler helpers shared by every domain: body
// parsing and validation, path params, pagination and the response envelope.
package basehdl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Aniket1026/yoto/internal/common"
	"github.com/Aniket1026/yoto/internal/global"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// normalizer is implemented by inputs that canonicalise fields before validation.
type normalizer interface {
	Normalize()
}

// ValidateInput runs the struct validator and reports the failing fields.
func ValidateInput(input interface{}) error {
	if n, ok := input.(normalizer); ok {
		n.Normalize()
	}
	if global.Validate == nil {
		global.InitValidator()
	}
	err := global.Validate.Struct(input)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[lowerFirst(fe.Field())] = fe.Tag()
		}
		return common.ErrInvalidInput.WithMessage(common.MsgValidationError).WithDetails(fields)
	}
	return common.ErrInvalidInput.WithDetails(err.Error())
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// ParseRequestBody decodes JSON with UseNumber and validates the result.
func ParseRequestBody(c fiber.Ctx, input interface{}) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return ValidateInput(input)
	}
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.ErrInvalidFormat.WithDetails(err.Error())
	}
	return ValidateInput(input)
}

// ParseForm binds multipart or urlencoded fields (`form` tags) and validates.
func ParseForm(c fiber.Ctx, input interface{}) error {
	if err := c.Bind().Form(input); err != nil {
		return common.ErrInvalidFormat.WithDetails(err.Error())
	}
	return ValidateInput(input)
}

// ParseObjectIDParam reads a path parameter as an ObjectID (BadRequest when malformed).
func ParseObjectIDParam(c fiber.Ctx, name string) (primitive.ObjectID, error) {
	raw := strings.TrimSpace(c.Params(name))
	if raw == "" {
		return primitive.NilObjectID, common.ErrRequiredField.WithMessage(fmt.Sprintf("%s is required", name))
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, common.ErrInvalidID.WithMessage(fmt.Sprintf("Invalid %s", name))
	}
	return id, nil
}

// ParsePagination reads page (default 1) and limit (default 10, max 100).
func ParsePagination(c fiber.Ctx) (int64, int64) {
	page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	if err != nil || page <= 0 {
		page = 1
	}
	limit, err := strconv.ParseInt(c.Query("limit", strconv.Itoa(defaultPageLimit)), 10, 64)
	if err != nil || limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// CurrentUserID returns the authenticated user's id set by the auth middleware.
func CurrentUserID(c fiber.Ctx) (primitive.ObjectID, error) {
	raw, _ := c.Locals("user_id").(string)
	if raw == "" {
		return primitive.NilObjectID, common.ErrTokenMissing
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, common.ErrTokenInvalid
	}
	return id, nil
}
