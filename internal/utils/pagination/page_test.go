package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		page, limit  int
		want         Params
		expectOffset int
	}{
		{"defaults", 0, 0, Params{Page: 1, Limit: 20}, 0},
		{"negative", -3, -1, Params{Page: 1, Limit: 20}, 0},
		{"third page", 3, 10, Params{Page: 3, Limit: 10}, 20},
		{"limit capped", 2, 500, Params{Page: 2, Limit: 100}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.page, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.expectOffset, got.Offset())
		})
	}
}

func TestNewMeta(t *testing.T) {
	assert.Equal(t, Meta{Total: 0, Page: 1, Limit: 20, TotalPages: 0}, NewMeta(0, Params{Page: 1, Limit: 20}))
	assert.Equal(t, 1, NewMeta(20, Params{Page: 1, Limit: 20}).TotalPages)
	assert.Equal(t, 2, NewMeta(21, Params{Page: 1, Limit: 20}).TotalPages)
	assert.Equal(t, 5, NewMeta(41, Params{Page: 2, Limit: 10}).TotalPages)
}
