package products

import (
	"github.com/rashedalhajeri/quickstore-builder/internal/domain"
	"github.com/rashedalhajeri/quickstore-builder/internal/gateway"
)

// ScopeAll and ScopeNone are sentinel scope values meaning "no filter".
// The dashboard sends them from its category/section selectors.
const (
	ScopeAll  = "all"
	ScopeNone = "none"
)

// FetchOptions selects products for a storefront section or a dashboard
// list. Zero-value scoping ids mean unscoped; Limit caps the result only
// when positive; IncludeArchived suppresses the not-archived filter for
// archive-management views.
type FetchOptions struct {
	SectionType     string
	StoreID         string
	CategoryID      string
	SectionID       string
	Limit           int
	IncludeArchived bool
}

func scoped(id string) bool {
	return id != "" && id != ScopeAll && id != ScopeNone
}

// BuildProductSpec translates FetchOptions into the gateway query per
// section type:
//
//	best_selling  -> sales_count DESC
//	new_arrivals  -> created_at DESC
//	featured      -> is_featured = true, created_at DESC
//	on_sale       -> discount_price IS NOT NULL, created_at DESC
//	category      -> created_at DESC (scoped by category_id)
//	custom        -> created_at DESC (scoped by section_id)
//	anything else -> created_at DESC
//
// All variants select active products, exclude archived ones unless
// IncludeArchived, and apply store/category/section scoping.
func BuildProductSpec(opts FetchOptions) gateway.Spec {
	spec := gateway.Spec{
		Table:   "products",
		Selects: []string{"products.*", "categories.name AS category_name"},
		Joins: []gateway.Join{
			{Clause: "LEFT JOIN categories ON categories.id = products.category_id"},
		},
		Filters: []gateway.Filter{gateway.Eq("is_active", true)},
	}

	if !opts.IncludeArchived {
		spec.Filters = append(spec.Filters, gateway.Eq("is_archived", false))
	}
	if opts.StoreID != "" {
		spec.Filters = append(spec.Filters, gateway.Eq("store_id", opts.StoreID))
	}
	if scoped(opts.CategoryID) {
		spec.Filters = append(spec.Filters, gateway.Eq("category_id", opts.CategoryID))
	}
	if scoped(opts.SectionID) {
		spec.Filters = append(spec.Filters, gateway.Eq("section_id", opts.SectionID))
	}

	switch opts.SectionType {
	case domain.SectionBestSelling:
		spec.Order = []gateway.Order{gateway.Desc("sales_count")}
	case domain.SectionFeatured:
		spec.Filters = append(spec.Filters, gateway.Eq("is_featured", true))
		spec.Order = []gateway.Order{gateway.Desc("created_at")}
	case domain.SectionOnSale:
		spec.Filters = append(spec.Filters, gateway.NotNull("discount_price"))
		spec.Order = []gateway.Order{gateway.Desc("created_at")}
	default:
		// new_arrivals, category, custom and unrecognized types all fall
		// back to newest-first.
		spec.Order = []gateway.Order{gateway.Desc("created_at")}
	}

	if opts.Limit > 0 {
		spec.Limit = opts.Limit
	}
	return spec
}
