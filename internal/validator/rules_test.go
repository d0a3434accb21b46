package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Abc123!x"))
	assert.NoError(t, ValidatePassword("P@ss999"))

	assert.ErrorIs(t, ValidatePassword("A1!"), ErrPasswordTooShort)
	assert.ErrorIs(t, ValidatePassword("abc123!x"), ErrPasswordNoUpper)
	assert.ErrorIs(t, ValidatePassword("Abcdef12!"), ErrPasswordFewDigits)
	assert.ErrorIs(t, ValidatePassword("Abc1234"), ErrPasswordNoSpecial)
}

func TestValidSectionKey(t *testing.T) {
	valid := []string{"BSIT-3-1", "BSCS-1-2", "IT101-4-10"}
	for _, key := range valid {
		assert.True(t, ValidSectionKey(key), key)
	}

	invalid := []string{
		"",
		"BSIT",
		"BSIT-3",
		"BSIT-3-1-2",
		"-3-1",
		"BSIT-0-1", // year below range
		"BSIT-5-1", // year above range
		"BSIT-x-1",
		"BSIT-3-x",
		"BS IT-3-1",
	}
	for _, key := range invalid {
		assert.False(t, ValidSectionKey(key), key)
	}
}

func TestSplitSectionKey(t *testing.T) {
	course, year, number, err := SplitSectionKey("BSIT-3-1")
	assert.NoError(t, err)
	assert.Equal(t, "BSIT", course)
	assert.Equal(t, 3, year)
	assert.Equal(t, 1, number)

	_, _, _, err = SplitSectionKey("not-a-key")
	assert.Error(t, err)
}
