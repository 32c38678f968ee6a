package models

// Session identifies the logged-in restaurant. It is handed by value to
// every manager so all queries stay inside one tenant.
type Session struct {
	RestaurantID   int64  `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
}
