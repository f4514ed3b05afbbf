package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.234))
	assert.Equal(t, 1.24, Round2(1.235))
	assert.Equal(t, -1.24, Round2(-1.235))
	assert.Equal(t, 0.0, Round2(0))
}

type createDTO struct {
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}

func TestNormalizeDTO(t *testing.T) {
	dto := createDTO{Name: "  Anna  ", Rate: 400.129}
	NormalizeDTO(&dto)
	assert.Equal(t, "Anna", dto.Name)
	assert.Equal(t, 400.13, dto.Rate)
}

type updateDTO struct {
	Name    *string  `json:"name"`
	Rate    *float64 `json:"rate"`
	Ignored *string  `json:"-"`
	Skipped *string  `json:"skipped"`
}

func TestNormalizePtrDTO(t *testing.T) {
	name := "  Anna "
	rate := 1.005
	dto := updateDTO{Name: &name, Rate: &rate}
	NormalizePtrDTO(&dto)
	assert.Equal(t, "Anna", *dto.Name)
	assert.Nil(t, dto.Skipped)
}

func TestUpdatesFromPtrDTO(t *testing.T) {
	name := "Anna"
	hidden := "x"
	dto := updateDTO{Name: &name, Ignored: &hidden}

	updates := UpdatesFromPtrDTO(&dto, nil)
	require.Len(t, updates, 1)
	assert.Equal(t, "Anna", updates["name"])

	renamed := UpdatesFromPtrDTO(&dto, map[string]string{"name": "full_name"})
	assert.Equal(t, "Anna", renamed["full_name"])
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 42, ParseIntDefault(" 42 ", 7))
	assert.Equal(t, 7, ParseIntDefault("abc", 7))
	assert.Equal(t, 7, ParseIntDefault("-3", 7))
	assert.Equal(t, 7, ParseIntDefault("", 7))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), d)

	ts, err := ParseDate("2025-03-15T14:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 14, ts.Hour())

	_, err = ParseDate("15.03.2025")
	assert.Error(t, err)
}

func TestValidMonth(t *testing.T) {
	assert.True(t, ValidMonth("2025-03"))
	assert.False(t, ValidMonth("2025-13"))
	assert.False(t, ValidMonth("2025-3"))
	assert.False(t, ValidMonth(""))
	assert.False(t, ValidMonth("March 2025"))
}
