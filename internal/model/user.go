package model

// User is a registered account. Password holds the bcrypt hash and is never
// serialized to clients.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Password    string `json:"-"`
	FullName    string `json:"fullName"`
	DateOfBirth string `json:"dateOfBirth"`
}

// UserSummary is the shape returned by user search: enough to identify a
// platform user without exposing profile details.
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}
