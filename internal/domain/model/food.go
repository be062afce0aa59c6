package model

// FoodItem is a concession menu entry.
type FoodItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	Available   bool    `json:"available"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// FoodItemInput is the create/update payload for menu items.
type FoodItemInput struct {
	Name        string  `json:"name"                  validate:"required,max=120"`
	Description string  `json:"description,omitempty" validate:"max=500"`
	Category    string  `json:"category,omitempty"    validate:"max=60"`
	Price       float64 `json:"price"                 validate:"gte=0"`
	Available   bool    `json:"available"`
	ImageURL    string  `json:"image_url,omitempty"   validate:"omitempty,url"`
}

// UploadedImage is the backend's answer to an image upload.
type UploadedImage struct {
	URL string `json:"url"`
}
