package dto

// ProductDocument is the shape indexed into Elasticsearch and returned by
// search queries. Field names match the index mapping.
type ProductDocument struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Brand            string   `json:"brand"`
	ShortDescription string   `json:"short_description"`
	Price            float64  `json:"price"`
	OldPrice         float64  `json:"old_price,omitempty"`
	Category         string   `json:"category"`
	Sizes            []string `json:"sizes"`
	Images           []string `json:"images"`
	Rating           float64  `json:"rating"`
	NumReviews       int      `json:"num_reviews"`
	InStock          bool     `json:"in_stock"`
}

// RatingUpdate is the payload of a product_rating_updated event.
type RatingUpdate struct {
	ProductID  string  `json:"product_id"`
	Rating     float64 `json:"rating"`
	NumReviews int     `json:"num_reviews"`
}
