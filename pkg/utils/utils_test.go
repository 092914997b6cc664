package utils_test

import (
	"testing"

	"github.com/coreledger/banking/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPin_RoundTrip(t *testing.T) {
	hash, err := utils.HashPin("1234")
	require.NoError(t, err)
	assert.NotEqual(t, "1234", hash)

	assert.True(t, utils.CheckPinHash("1234", hash))
	assert.False(t, utils.CheckPinHash("4321", hash))
}
