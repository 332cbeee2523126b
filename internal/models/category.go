package models

// Transaction categories form a fixed set; filters referencing anything else
// are rejected before touching storage.
const (
	CategoryGroceries     = "groceries"
	CategoryDining        = "dining"
	CategoryTransport     = "transport"
	CategoryUtilities     = "utilities"
	CategoryEntertainment = "entertainment"
	CategoryHealth        = "health"
	CategoryShopping      = "shopping"
	CategoryTravel        = "travel"
	CategoryIncome        = "income"
	CategoryOther         = "other"
)

var knownCategories = map[string]bool{
	CategoryGroceries:     true,
	CategoryDining:        true,
	CategoryTransport:     true,
	CategoryUtilities:     true,
	CategoryEntertainment: true,
	CategoryHealth:        true,
	CategoryShopping:      true,
	CategoryTravel:        true,
	CategoryIncome:        true,
	CategoryOther:         true,
}

// IsKnownCategory reports whether name belongs to the fixed category set.
func IsKnownCategory(name string) bool {
	return knownCategories[name]
}
