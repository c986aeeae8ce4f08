package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysOprLog{},
	&Merchant{},
	// Store
	&Store{},
	&StoreFeature{},
	&StoreThemeSettings{},
	&StoreShippingSettings{},
	&DeliveryArea{},
	// Catalog
	&Product{},
	&Category{},
	&Section{},
	// Orders
	&Order{},
	&OrderItem{},
}
