package domain

import "strings"

// MaxHistoryItems caps the recent-search list per user.
const MaxHistoryItems = 10

// Favorite is a saved city.
type Favorite struct {
	City    string
	Country string // ISO country code, may be empty
}

// FavoriteKey builds the identity key a favorite is deduplicated by.
func FavoriteKey(city, country string) string {
	return strings.ToLower(strings.TrimSpace(city)) + "|" + strings.ToUpper(strings.TrimSpace(country))
}
