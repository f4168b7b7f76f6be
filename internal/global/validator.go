package global

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_.]{3,30}$`)

// InitValidator creates Validate and registers the custom rules
// no_xss, no_sql_injection, username and objectid.
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("no_sql_injection", validateNoSQLInjection)
	_ = Validate.RegisterValidation("username", validateUsername)
	_ = Validate.RegisterValidation("objectid", validateObjectID)
}

func validateNoXSS(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"onmouseover=",
		"eval(",
		"document.cookie",
		"document.write",
		"innerhtml",
		"fromcharcode",
		"window.location",
		"<iframe",
		"<object",
		"<embed",
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// rejects mongo operator injection in free-text filters ("$where", "$ne", ...)
func validateNoSQLInjection(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if strings.HasPrefix(strings.TrimSpace(value), "$") {
		return false
	}
	for _, pattern := range []string{"{$", "$where", "$regex", "$ne", "$gt", "$lt"} {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// lowercase letters, digits, dot and underscore, 3 to 30 chars
func validateUsername(fl validator.FieldLevel) bool {
	return usernamePattern.MatchString(fl.Field().String())
}

func validateObjectID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return primitive.IsValidObjectID(value)
}
