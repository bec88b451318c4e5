package timezone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reservation/shared/timezone"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { _ = timezone.Init("UTC") })

	require.NoError(t, timezone.Init("Asia/Jakarta"))
	assert.Equal(t, "Asia/Jakarta", timezone.GetLocation().String())
	assert.Equal(t, "Asia/Jakarta", timezone.Now().Location().String())

	assert.Error(t, timezone.Init("Mars/Olympus_Mons"))
	assert.Equal(t, time.UTC, timezone.GetLocation())

	require.NoError(t, timezone.Init(""))
	assert.Equal(t, time.UTC, timezone.GetLocation())
}

func TestParseAndFormat(t *testing.T) {
	t.Cleanup(func() { _ = timezone.Init("UTC") })
	require.NoError(t, timezone.Init("Asia/Jakarta"))

	parsed, err := timezone.Parse(time.DateOnly, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2023-12-31T17:00:00Z", parsed.UTC().Format(time.RFC3339))

	testTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-01 19:00", timezone.Format(testTime, "2006-01-02 15:04"))

	_, err = timezone.Parse(time.DateOnly, "not-a-date")
	assert.Error(t, err)
}
