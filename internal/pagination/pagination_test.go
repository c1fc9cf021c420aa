package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	cases := []struct {
		name     string
		total    int64
		page     int
		limit    int
		expected Info
	}{
		{"exact multiple", 20, 1, 10, Info{Total: 20, Pages: 2, Current: 1}},
		{"partial last page", 25, 2, 10, Info{Total: 25, Pages: 3, Current: 2}},
		{"empty list", 0, 1, 10, Info{Total: 0, Pages: 0, Current: 1}},
		{"single item", 1, 1, 16, Info{Total: 1, Pages: 1, Current: 1}},
		{"page past the end is reported as requested", 10, 5, 10, Info{Total: 10, Pages: 1, Current: 5}},
		{"zero limit treated as one", 3, 1, 0, Info{Total: 3, Pages: 3, Current: 1}},
		{"zero page treated as first", 10, 0, 10, Info{Total: 10, Pages: 1, Current: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, New(tc.total, tc.page, tc.limit))
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 10))
	assert.Equal(t, 10, Offset(2, 10))
	assert.Equal(t, 32, Offset(3, 16))
	assert.Equal(t, 0, Offset(0, 10))
	assert.Equal(t, 0, Offset(-5, 10))
}

func TestNormalize(t *testing.T) {
	page, limit := 0, 0
	Normalize(&page, &limit, 16, 50)
	assert.Equal(t, 1, page)
	assert.Equal(t, 16, limit)

	page, limit = 3, 200
	Normalize(&page, &limit, 16, 50)
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, limit)

	page, limit = 2, 25
	Normalize(&page, &limit, 16, 50)
	assert.Equal(t, 2, page)
	assert.Equal(t, 25, limit)
}
