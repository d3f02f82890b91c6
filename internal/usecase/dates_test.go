package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInclusiveDays(t *testing.T) {
	days, err := InclusiveDays("2024-01-01", "2024-01-03")
	require.NoError(t, err)
	assert.Equal(t, 3, days)

	days, err = InclusiveDays("2024-02-28", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 3, days, "leap year")

	days, err = InclusiveDays("2024-05-05", "2024-05-05")
	require.NoError(t, err)
	assert.Equal(t, 1, days)
}

func TestInclusiveDays_Invalid(t *testing.T) {
	_, err := InclusiveDays("2024-01-03", "2024-01-01")
	assert.Error(t, err)

	_, err = InclusiveDays("03/01/2024", "2024-01-05")
	assert.Error(t, err)
}

func TestOverlapDays(t *testing.T) {
	assert.Equal(t, 2, overlapDays("2024-01-30", "2024-02-02", "2024-01-01", "2024-01-31"))
	assert.Equal(t, 0, overlapDays("2024-03-01", "2024-03-02", "2024-01-01", "2024-01-31"))
	assert.Equal(t, 5, overlapDays("2024-01-10", "2024-01-14", "2024-01-01", "2024-01-31"))
}

func TestPeriodBounds(t *testing.T) {
	from, to := periodBounds(2024, 2)
	assert.Equal(t, "2024-02-01", from)
	assert.Equal(t, "2024-02-29", to)

	from, to = periodBounds(2023, 0)
	assert.Equal(t, "2023-01-01", from)
	assert.Equal(t, "2023-12-31", to)
}
