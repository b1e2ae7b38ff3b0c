package model

import "time"

// Memory is a single journal entry recorded against one of the twelve
// life categories. ImageURL may hold a data URI produced by the client's
// in-browser compression, or a plain URL.
type Memory struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	CategoryID int64     `json:"categoryId"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	ImageURL   *string   `json:"imageUrl"`
	CreatedAt  time.Time `json:"createdAt"`
}
