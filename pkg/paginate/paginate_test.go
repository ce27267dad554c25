package paginate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/glowmart/pkg/paginate"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		name                string
		page, limit         int
		wantPage, wantLimit int
	}{
		{"defaults", 0, 0, 1, 10},
		{"negative page", -3, 10, 1, 10},
		{"limit below range", 2, -5, 2, 1},
		{"limit above range", 1, 500, 1, 50},
		{"in range untouched", 4, 25, 4, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, limit := paginate.Clamp(tc.page, tc.limit, 10, 50)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantLimit, limit)
		})
	}
}

func TestPages(t *testing.T) {
	assert.Equal(t, 0, paginate.Pages(0, 10))
	assert.Equal(t, 1, paginate.Pages(1, 10))
	assert.Equal(t, 1, paginate.Pages(10, 10))
	assert.Equal(t, 2, paginate.Pages(11, 10))
	assert.Equal(t, 7, paginate.Pages(61, 10))
}

func TestNewReplacesNilItems(t *testing.T) {
	p := paginate.New[string](nil, 0, 1, 10)
	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	assert.Equal(t, 0, p.Pages)
}
