package products

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageSizeFor(t *testing.T) {
	assert.Equal(t, PageSizeNarrow, PageSizeFor(true))
	assert.Equal(t, PageSizeWide, PageSizeFor(false))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 3, TotalPages(45, 20))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestPaginateWindows(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	first := Paginate(items, 1, 10)
	assert.Equal(t, 10, len(first))
	assert.Equal(t, 0, first[0])

	last := Paginate(items, 3, 10)
	assert.Equal(t, 5, len(last))
	assert.Equal(t, 20, last[0])

	assert.Empty(t, Paginate(items, 4, 10))
	assert.Empty(t, Paginate(items, 0, 10))
	assert.Empty(t, Paginate([]int{}, 1, 10))
}

func TestPaginateCoversEveryItemOnce(t *testing.T) {
	items := make([]int, 37)
	for i := range items {
		items[i] = i
	}
	seen := map[int]int{}
	for p := 1; p <= TotalPages(len(items), 10); p++ {
		for _, it := range Paginate(items, p, 10) {
			seen[it]++
		}
	}
	assert.Equal(t, len(items), len(seen))
	for _, n := range seen {
		assert.Equal(t, 1, n)
	}
}

func TestListViewSelectionResetsOnPageChange(t *testing.T) {
	v := NewListView(PageSizeNarrow)
	v.Select("a")
	v.Select("b")
	v.Select("b")
	assert.Equal(t, []string{"a", "b"}, v.SelectedIDs())

	v.Deselect("a")
	assert.Equal(t, []string{"b"}, v.SelectedIDs())

	v.SetPage(2)
	assert.Equal(t, 2, v.Page())
	assert.Empty(t, v.SelectedIDs())
}

func TestListViewPageFloor(t *testing.T) {
	v := NewListView(PageSizeWide)
	v.SetPage(-3)
	assert.Equal(t, 1, v.Page())
}

func TestVisibleOf(t *testing.T) {
	v := NewListView(2)
	items := []string{"p1", "p2", "p3"}
	assert.Equal(t, []string{"p1", "p2"}, VisibleOf(v, items))
	v.SetPage(2)
	assert.Equal(t, []string{"p3"}, VisibleOf(v, items))
}
