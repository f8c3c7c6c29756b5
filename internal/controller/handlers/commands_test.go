package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommandID(t *testing.T) {
	id, err := parseCommandID("/notifyexpired 3")
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)

	_, err = parseCommandID("/notifyexpired")
	assert.Error(t, err)

	_, err = parseCommandID("/notifyexpired abc")
	assert.Error(t, err)
}
