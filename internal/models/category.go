package models

// Category is display reference data for a spending bucket. Categories are
// not persisted; the fixed set below is the single source of truth for
// validation, aggregation, and client defaults.
type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var categories = []Category{
	{ID: 1, Name: "Food", Icon: "🍕", Color: "#FF6B6B"},
	{ID: 2, Name: "Transport", Icon: "🚗", Color: "#4ECDC4"},
	{ID: 3, Name: "Rent", Icon: "🏠", Color: "#45B7D1"},
	{ID: 4, Name: "Health", Icon: "💊", Color: "#96CEB4"},
	{ID: 5, Name: "Shopping", Icon: "🛍️", Color: "#FFEAA7"},
	{ID: 6, Name: "Others", Icon: "📦", Color: "#DDA0DD"},
}

// Categories returns the fixed category set.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ValidCategory reports whether name is a member of the fixed category set.
func ValidCategory(name string) bool {
	for _, c := range categories {
		if c.Name == name {
			return true
		}
	}
	return false
}
