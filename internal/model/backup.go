package model

import "time"

// Backup records one completed journal backup upload.
type Backup struct {
	ID        int64     `json:"id"`
	Key       string    `json:"key"`
	SizeBytes int64     `json:"size_bytes"`
	Encrypted bool      `json:"encrypted"`
	CreatedAt time.Time `json:"created_at"`
}
