package menu

// Record is the persisted menu for one restaurant. It is written as a
// whole on every successful extraction; there is no partial-update path.
type Record struct {
	RestaurantName   string `json:"restaurant_name"`
	Items            []Item `json:"items"`
	TotalItems       int    `json:"total_items"`
	ExtractionMethod string `json:"extraction_method,omitempty"`
	RawText          string `json:"raw_text,omitempty"`

	// Error carries a contained extraction failure. A record with an
	// error still saves with an empty item list rather than failing
	// the whole upload.
	Error string `json:"error,omitempty"`
}

// Item is a single menu entry. Name is the only required field.
// Price is an opaque display string ("€12.50"), never a number.
// Duplicate names within a restaurant are permitted.
type Item struct {
	Name        string `json:"name"`
	Price       string `json:"price,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

// TaggedItem is an Item annotated with the restaurant it came from,
// used by cross-restaurant search.
type TaggedItem struct {
	Item
	Restaurant string `json:"restaurant"`
}
