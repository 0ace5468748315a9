package fields

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patchBody struct {
	Description NullableString `json:"description,omitempty"`
}

func TestNullableString_ThreeStates(t *testing.T) {
	var absent, null, set patchBody
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	require.NoError(t, json.Unmarshal([]byte(`{"description":null}`), &null))
	require.NoError(t, json.Unmarshal([]byte(`{"description":"hi"}`), &set))

	assert.True(t, absent.Description.IsUnset())
	assert.False(t, null.Description.IsUnset())
	assert.True(t, null.Description.IsNull())
	assert.Equal(t, "hi", set.Description.GetOrZero())
}

func TestFormatting(t *testing.T) {
	d, err := ParseDate("2026-02-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2026-02-10", Date(d))
	assert.Equal(t, "2026-02-10T00:00:00Z", Timestamp(d))
	assert.Equal(t, "5.50", Money(decimal.RequireFromString("5.5")))
	assert.Equal(t, "19.99", Amount(19.99).String())
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("10/02/2026")
	assert.Error(t, err)
}
