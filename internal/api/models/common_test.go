package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envmonitor/envmonitor/internal/api/models"
)

func TestTimestamp_MarshalJSON(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)
	ts := models.Timestamp(time.Date(2024, 3, 1, 9, 30, 15, 250_000_000, loc))

	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-01T14:30:15.250Z"`, string(data))
}

func TestTimestampPtr(t *testing.T) {
	assert.Nil(t, models.TimestampPtr(time.Time{}))

	now := time.Now()
	ptr := models.TimestampPtr(now)
	require.NotNil(t, ptr)
	assert.True(t, time.Time(*ptr).Equal(now))
}
