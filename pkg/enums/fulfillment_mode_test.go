package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFulfillmentMode(t *testing.T) {
	mode, err := ParseFulfillmentMode(" Delivery ")
	require.NoError(t, err)
	assert.Equal(t, FulfillmentDelivery, mode)

	mode, err = ParseFulfillmentMode("")
	require.NoError(t, err)
	assert.Equal(t, FulfillmentPickup, mode)

	_, err = ParseFulfillmentMode("drone")
	require.Error(t, err)
}

func TestFulfillmentModeIsValid(t *testing.T) {
	assert.True(t, FulfillmentPickup.IsValid())
	assert.True(t, FulfillmentDelivery.IsValid())
	assert.False(t, FulfillmentMode("teleport").IsValid())
	assert.Equal(t, "pickup", FulfillmentPickup.String())
}
