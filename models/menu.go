package models

// MenuItem is one product on the cart menu.
type MenuItem struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image"`
}

// MenuStation groups menu items under a titled cart station.
type MenuStation struct {
	Title string     `json:"title"`
	Items []MenuItem `json:"items"`
}
