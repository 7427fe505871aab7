package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := map[string]any{"rating": 5}
	event, err := NewEvent("review.submitted", "rev-1", "review", "farmmitra", payload)
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "review.submitted", event.EventType)
	assert.Equal(t, "rev-1", event.AggregateID)
	assert.Equal(t, "review", event.AggregateType)
	assert.Equal(t, 1, event.Version)
	assert.Equal(t, "farmmitra", event.Source)
	assert.False(t, event.Timestamp.IsZero())
}

func TestEvent_WithCorrelationIDAndMetadata(t *testing.T) {
	event, err := NewEvent("lead.captured", "lead-1", "farmer_lead", "farmmitra", nil)
	require.NoError(t, err)

	event.WithCorrelationID("corr-1").WithMetadata("channel", "web")

	assert.Equal(t, "corr-1", event.CorrelationID)
	assert.Equal(t, "web", event.Metadata["channel"])
}

func TestEvent_UnmarshalData(t *testing.T) {
	type reviewData struct {
		Rating int `json:"rating"`
	}

	event, err := NewEvent("review.submitted", "rev-1", "review", "farmmitra", reviewData{Rating: 4})
	require.NoError(t, err)

	raw, err := event.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalEvent(raw)
	require.NoError(t, err)

	var data reviewData
	require.NoError(t, decoded.UnmarshalData(&data))
	assert.Equal(t, 4, data.Rating)
}
