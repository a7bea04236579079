package entity

const GuestName = "Guest"

type UserSettings struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	DarkMode bool   `json:"dark_mode"`
}
