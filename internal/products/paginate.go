package products

import "sort"

// Page sizes for product lists by viewport class.
const (
	PageSizeNarrow = 10
	PageSizeWide   = 20
)

// PageSizeFor returns the list page size for a viewport class.
func PageSizeFor(narrow bool) int {
	if narrow {
		return PageSizeNarrow
	}
	return PageSizeWide
}

// TotalPages returns ceil(n / pageSize). Zero for an empty list.
func TotalPages(n, pageSize int) int {
	if n <= 0 || pageSize <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// Paginate slices an already-fetched list into the 1-based page window
// [(page-1)*pageSize, page*pageSize). Out-of-range pages yield an empty
// slice.
func Paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize <= 0 {
		return nil
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ListView tracks the current page and multi-select state of a product
// list. Changing page unconditionally clears the selection so stale ids
// can never outlive the page they were selected on.
type ListView struct {
	page     int
	pageSize int
	selected map[string]struct{}
}

func NewListView(pageSize int) *ListView {
	return &ListView{page: 1, pageSize: pageSize, selected: map[string]struct{}{}}
}

func (v *ListView) Page() int     { return v.page }
func (v *ListView) PageSize() int { return v.pageSize }

// SetPage moves to page p and resets the selection.
func (v *ListView) SetPage(p int) {
	if p < 1 {
		p = 1
	}
	v.page = p
	v.selected = map[string]struct{}{}
}

func (v *ListView) Select(id string) {
	v.selected[id] = struct{}{}
}

func (v *ListView) Deselect(id string) {
	delete(v.selected, id)
}

func (v *ListView) ClearSelection() {
	v.selected = map[string]struct{}{}
}

// SelectedIDs returns the selected ids in stable order.
func (v *ListView) SelectedIDs() []string {
	ids := make([]string, 0, len(v.selected))
	for id := range v.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// VisibleOf returns the slice of items on the current page.
func VisibleOf[T any](v *ListView, items []T) []T {
	return Paginate(items, v.page, v.pageSize)
}
