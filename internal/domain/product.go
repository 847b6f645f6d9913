package domain

// Product is a storefront catalog record. The search engine reads only
// the four text fields (name, category, short description, description);
// everything else passes through to the caller untouched.
type Product struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Slug             string   `json:"slug"`
	Price            int64    `json:"price"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"shortDescription"`
	Images           []string `json:"images"`
	Stock            int      `json:"stock"`
	Category         string   `json:"category"`
	Featured         bool     `json:"featured,omitempty"`
}
