package model

import "time"

// PushSubscription is one browser push endpoint registered by a user.
type PushSubscription struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Endpoint   string    `json:"endpoint"`
	P256dhKey  string    `json:"-"`
	AuthKey    string    `json:"-"`
	DeviceName string    `json:"device_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// PushPreference controls the daily prompt reminder for one user.
// ReminderHour is the local hour (0-23) at which the reminder fires.
type PushPreference struct {
	UserID        int64 `json:"user_id"`
	DailyReminder bool  `json:"daily_reminder"`
	ReminderHour  int   `json:"reminder_hour"`
}
