package userdto_test

import (
	"testing"

	basehdl "github.com/Aniket1026/yoto/internal/api/base/handler"
	userdto "github.com/Aniket1026/yoto/internal/api/user/dto"
	"github.com/Aniket1026/yoto/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterInputUsername(t *testing.T) {
	cases := []struct {
		name     string
		username string
		want     string
		ok       bool
	}{
		{"mixed case is lowered", "  Alice_01 ", "alice_01", true},
		{"dots allowed", "jane.doe", "jane.doe", true},
		{"slash", "bad/name", "", false},
		{"space inside", "has space", "", false},
		{"query mark", "who?", "", false},
		{"unicode", "zoë", "", false},
		{"too short", "ab", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := &userdto.RegisterInput{
				Username: tc.username,
				Fullname: "Alice",
				Email:    " Alice@Example.com ",
				Password: "secret1",
			}
			err := basehdl.ValidateInput(input)
			if !tc.ok {
				require.Error(t, err)
				assert.Equal(t, common.StatusBadRequest, common.StatusOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, input.Username)
			assert.Equal(t, "alice@example.com", input.Email)
		})
	}
}
