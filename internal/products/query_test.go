package products

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rashedalhajeri/quickstore-builder/internal/domain"
	"github.com/rashedalhajeri/quickstore-builder/internal/gateway"
)

func hasFilter(spec gateway.Spec, op gateway.FilterOp, column string) bool {
	for _, f := range spec.Filters {
		if f.Op == op && f.Column == column {
			return true
		}
	}
	return false
}

func filterValue(spec gateway.Spec, op gateway.FilterOp, column string) interface{} {
	for _, f := range spec.Filters {
		if f.Op == op && f.Column == column {
			return f.Value
		}
	}
	return nil
}

func TestBuildProductSpecBaseline(t *testing.T) {
	spec := BuildProductSpec(FetchOptions{StoreID: "s1"})

	assert.Equal(t, "products", spec.Table)
	assert.Equal(t, true, filterValue(spec, gateway.OpEq, "is_active"))
	assert.Equal(t, false, filterValue(spec, gateway.OpEq, "is_archived"))
	assert.Equal(t, "s1", filterValue(spec, gateway.OpEq, "store_id"))
	assert.Equal(t, []gateway.Order{gateway.Desc("created_at")}, spec.Order)
	assert.Len(t, spec.Joins, 1)
}

func TestBuildProductSpecBestSelling(t *testing.T) {
	spec := BuildProductSpec(FetchOptions{SectionType: domain.SectionBestSelling})
	assert.Equal(t, []gateway.Order{gateway.Desc("sales_count")}, spec.Order)
	assert.False(t, hasFilter(spec, gateway.OpEq, "is_featured"))
	assert.False(t, hasFilter(spec, gateway.OpNotNull, "discount_price"))
}

func TestBuildProductSpecFeatured(t *testing.T) {
	spec := BuildProductSpec(FetchOptions{SectionType: domain.SectionFeatured})
	assert.Equal(t, true, filterValue(spec, gateway.OpEq, "is_featured"))
	assert.Equal(t, []gateway.Order{gateway.Desc("created_at")}, spec.Order)
}

func TestBuildProductSpecOnSale(t *testing.T) {
	spec := BuildProductSpec(FetchOptions{SectionType: domain.SectionOnSale})
	assert.True(t, hasFilter(spec, gateway.OpNotNull, "discount_price"))
	assert.Equal(t, []gateway.Order{gateway.Desc("created_at")}, spec.Order)
}

func TestBuildProductSpecNewestFirstFallback(t *testing.T) {
	for _, typ := range []string{domain.SectionNewArrivals, domain.SectionCategory, domain.SectionCustom, "mystery"} {
		spec := BuildProductSpec(FetchOptions{SectionType: typ})
		assert.Equal(t, []gateway.Order{gateway.Desc("created_at")}, spec.Order, typ)
	}
}

func TestBuildProductSpecScopeSentinels(t *testing.T) {
	spec := BuildProductSpec(FetchOptions{CategoryID: ScopeAll, SectionID: ScopeNone})
	assert.False(t, hasFilter(spec, gateway.OpEq, "category_id"))
	assert.False(t, hasFilter(spec, gateway.OpEq, "section_id"))

	spec = BuildProductSpec(FetchOptions{CategoryID: "c9", SectionID: "sec4"})
	assert.Equal(t, "c9", filterValue(spec, gateway.OpEq, "category_id"))
	assert.Equal(t, "sec4", filterValue(spec, gateway.OpEq, "section_id"))
}

func TestBuildProductSpecIncludeArchived(t *testing.T) {
	spec := BuildProductSpec(FetchOptions{IncludeArchived: true})
	assert.False(t, hasFilter(spec, gateway.OpEq, "is_archived"))
	assert.True(t, hasFilter(spec, gateway.OpEq, "is_active"))
}

func TestBuildProductSpecLimit(t *testing.T) {
	assert.Equal(t, 0, BuildProductSpec(FetchOptions{}).Limit)
	assert.Equal(t, 0, BuildProductSpec(FetchOptions{Limit: -4}).Limit)
	assert.Equal(t, 8, BuildProductSpec(FetchOptions{Limit: 8}).Limit)
}
