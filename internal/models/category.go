package models

// Category is a static browse/filter choice. Categories are not persisted
// anywhere beyond the id stored on each listing.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

var Categories = []Category{
	{ID: "vehicles", Name: "Vehicles", Icon: "🚗"},
	{ID: "property-rentals", Name: "Property Rentals", Icon: "🏠"},
	{ID: "apparel", Name: "Apparel", Icon: "👕"},
	{ID: "classifieds", Name: "Classifieds", Icon: "📄"},
	{ID: "electronics", Name: "Electronics", Icon: "💻"},
	{ID: "entertainment", Name: "Entertainment", Icon: "🎫"},
	{ID: "family", Name: "Family", Icon: "👥"},
	{ID: "free-stuff", Name: "Free Stuff", Icon: "🎁"},
	{ID: "garden-outdoor", Name: "Garden & Outdoor", Icon: "🌱"},
	{ID: "hobbies", Name: "Hobbies", Icon: "🎨"},
	{ID: "home-goods", Name: "Home Goods", Icon: "🛋️"},
	{ID: "home-improvement", Name: "Home Improvement Supplies", Icon: "🔨"},
	{ID: "home-sales", Name: "Home Sales", Icon: "🏡"},
	{ID: "musical-instruments", Name: "Musical Instruments", Icon: "🎵"},
	{ID: "office-supplies", Name: "Office Supplies", Icon: "📋"},
	{ID: "pet-supplies", Name: "Pet Supplies", Icon: "🐾"},
}

// CategoryName resolves a category id to its display name, falling back to
// the raw id for unknown values.
func CategoryName(id string) string {
	for _, c := range Categories {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}
