package etag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromJSON(t *testing.T) {
	a, body, err := FromJSON([]int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, "[1,2]", string(body))
	assert.True(t, len(a) > 2 && a[0] == '"' && a[len(a)-1] == '"')

	b, _, err := FromJSON([]int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, _, err := FromJSON([]int{2, 1})
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
