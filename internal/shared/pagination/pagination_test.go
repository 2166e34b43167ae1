package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, Query{Page: 1, Limit: DefaultLimit}, Query{}.Normalize())
	assert.Equal(t, Query{Page: 3, Limit: MaxLimit}, Query{Page: 3, Limit: 500}.Normalize())
	assert.Equal(t, 20, Query{Page: 2, Limit: 20}.Offset())
}

func TestSlice(t *testing.T) {
	all := []int{1, 2, 3, 4, 5}

	res := Slice(all, Query{Page: 2, Limit: 2})
	assert.Equal(t, []int{3, 4}, res.Items)
	assert.Equal(t, int64(5), res.TotalCount)
	assert.Equal(t, 3, res.TotalPages)

	empty := Slice(all, Query{Page: 9, Limit: 2})
	assert.Empty(t, empty.Items)
	assert.NotNil(t, empty.Items)
}
