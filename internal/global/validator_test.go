package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Username string `validate:"required,username"`
	Title    string `validate:"required,no_xss"`
	Query    string `validate:"no_sql_injection"`
	VideoID  string `validate:"omitempty,objectid"`
}

func TestCustomValidators(t *testing.T) {
	InitValidator()

	valid := sample{Username: "chai_aur.code", Title: "Intro to Go", Query: "go tutorial", VideoID: "65a1b2c3d4e5f60718293a4b"}
	assert.NoError(t, Validate.Struct(valid))

	cases := map[string]sample{
		"uppercase username": {Username: "ChaiAurCode", Title: "t"},
		"short username":     {Username: "ab", Title: "t"},
		"script title":       {Username: "abc", Title: "<script>alert(1)</script>"},
		"operator query":     {Username: "abc", Title: "t", Query: "{$ne: null}"},
		"bad object id":      {Username: "abc", Title: "t", VideoID: "not-an-id"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, Validate.Struct(c))
		})
	}
}
