package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("bad"), KindValidation},
		{"field validation", FieldValidation("email", "bad"), KindValidation},
		{"unauthenticated", Unauthenticated("no token"), KindAuthentication},
		{"forbidden", Forbidden("not yours"), KindAuthorization},
		{"not found", NotFound("post", 1), KindNotFound},
		{"conflict", Conflict("dup"), KindConflict},
		{"wrapped", fmt.Errorf("ctx: %w", Conflict("dup")), KindConflict},
		{"plain", errors.New("boom"), KindInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}

func TestInternalUnwrap(t *testing.T) {
	cause := errors.New("db down")
	err := Internal(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal server error: db down", err.Error())
	assert.False(t, Is(nil, KindInternal))
}

func TestFieldValidationCarriesField(t *testing.T) {
	err := FieldValidation("description", "<murder> word is not an allowed word")
	assert.Equal(t, map[string]string{"description": "<murder> word is not an allowed word"}, err.Fields)
}
