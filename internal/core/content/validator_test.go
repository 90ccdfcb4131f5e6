package content

import (
	"testing"

	"socialfeed/internal/core/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckRejectsBlockedWords(t *testing.T) {
	v := NewValidator()

	for _, text := range []string{
		"Create Murder description",
		"MURDER",
		"murder",
		"Murderer on the loose",
	} {
		err := v.Check("description", text)
		require.Error(t, err, text)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	}
}

func TestCheckAcceptsCleanText(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Check("description", "Create sample description"))
	assert.NoError(t, v.Check("description", ""))
}

func TestFindBlockedReturnsWord(t *testing.T) {
	v := NewValidator("spam", " Scam ")

	w, found := v.FindBlocked("this is a SCAMmer")
	assert.True(t, found)
	assert.Equal(t, "scam", w)

	_, found = v.FindBlocked("murder is not blocked here")
	assert.False(t, found)
}

func TestCheckReportsField(t *testing.T) {
	err := NewValidator().Check("name", "murder tag")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "<murder> word is not an allowed word", appErr.Fields["name"])
}
