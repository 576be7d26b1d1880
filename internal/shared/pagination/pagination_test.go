package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "empty falls back to 1", raw: "", want: 1},
		{name: "non numeric falls back to 1", raw: "abc", want: 1},
		{name: "zero falls back to 1", raw: "0", want: 1},
		{name: "negative falls back to 1", raw: "-3", want: 1},
		{name: "valid page", raw: "7", want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePage(tt.raw))
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name           string
		page           int
		limit          int
		total          int
		wantPage       int
		wantTotalPages int
	}{
		{name: "13 items split into 10 and 3", page: 1, limit: 10, total: 13, wantPage: 1, wantTotalPages: 2},
		{name: "second page of 13", page: 2, limit: 10, total: 13, wantPage: 2, wantTotalPages: 2},
		{name: "page past the end clamps to last", page: 99, limit: 10, total: 13, wantPage: 2, wantTotalPages: 2},
		{name: "empty collection keeps page 1", page: 5, limit: 10, total: 0, wantPage: 1, wantTotalPages: 1},
		{name: "exact multiple has no partial page", page: 3, limit: 10, total: 30, wantPage: 3, wantTotalPages: 3},
		{name: "non positive page defaults to 1", page: 0, limit: 10, total: 30, wantPage: 1, wantTotalPages: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantTotalPages, p.TotalPages)
			assert.Equal(t, tt.total, p.Total)
		})
	}
}

func TestParamsNavigation(t *testing.T) {
	p := New(1, 10, 13)
	assert.True(t, p.HasNext())
	assert.False(t, p.HasPrev())
	assert.Equal(t, 0, p.Offset())

	p = New(2, 10, 13)
	assert.False(t, p.HasNext())
	assert.True(t, p.HasPrev())
	assert.Equal(t, 10, p.Offset())
}

func TestSlicePage(t *testing.T) {
	items := make([]int, 13)
	for i := range items {
		items[i] = i
	}

	first := SlicePage(items, New(1, 10, len(items)))
	assert.Len(t, first, 10)
	assert.Equal(t, 0, first[0])

	second := SlicePage(items, New(2, 10, len(items)))
	assert.Len(t, second, 3)
	assert.Equal(t, 10, second[0])

	clamped := SlicePage(items, New(50, 10, len(items)))
	assert.Len(t, clamped, 3)

	empty := SlicePage([]int{}, New(1, 10, 0))
	assert.Empty(t, empty)
}
