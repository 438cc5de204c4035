package domain

// Listing is a service offered on the marketplace by a developer.
type Listing struct {
	ID          string
	DeveloperID string
	Title       string
	Price       Money
}
