package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mwhitten/memento/internal/model"
)

// PushStore persists web push subscriptions and reminder preferences. It is
// specific to the durable backend: reminders only make sense on a server
// whose subscriptions survive restarts.
type PushStore struct {
	db *sql.DB
}

func NewPushStore(db *sql.DB) *PushStore {
	return &PushStore{db: db}
}

const subCols = `id, user_id, endpoint, p256dh_key, auth_key, device_name, created_at`

func scanSubscription(scanner interface{ Scan(...any) error }) (*model.PushSubscription, error) {
	var sub model.PushSubscription
	err := scanner.Scan(&sub.ID, &sub.UserID, &sub.Endpoint, &sub.P256dhKey, &sub.AuthKey, &sub.DeviceName, &sub.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// CreateSubscription inserts or refreshes a subscription keyed by endpoint.
func (s *PushStore) CreateSubscription(userID int64, endpoint, p256dh, auth, deviceName string) (*model.PushSubscription, error) {
	_, err := s.db.Exec(
		`INSERT INTO push_subscriptions (user_id, endpoint, p256dh_key, auth_key, device_name)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(endpoint) DO UPDATE SET user_id = excluded.user_id,
		     p256dh_key = excluded.p256dh_key, auth_key = excluded.auth_key,
		     device_name = excluded.device_name`,
		userID, endpoint, p256dh, auth, deviceName,
	)
	if err != nil {
		return nil, fmt.Errorf("create push subscription: %w", err)
	}
	return s.GetByEndpoint(endpoint)
}

func (s *PushStore) GetByEndpoint(endpoint string) (*model.PushSubscription, error) {
	row := s.db.QueryRow(`SELECT `+subCols+` FROM push_subscriptions WHERE endpoint = ?`, endpoint)
	sub, err := scanSubscription(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get push subscription: %w", err)
	}
	return sub, nil
}

func (s *PushStore) ListByUser(userID int64) ([]model.PushSubscription, error) {
	rows, err := s.db.Query(
		`SELECT `+subCols+` FROM push_subscriptions WHERE user_id = ? ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list push subscriptions: %w", err)
	}
	defer rows.Close()

	var out []model.PushSubscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan push subscription: %w", err)
		}
		out = append(out, *sub)
	}
	return out, rows.Err()
}

// DeleteSubscription removes a subscription only if it belongs to the user.
func (s *PushStore) DeleteSubscription(id, userID int64) error {
	_, err := s.db.Exec(`DELETE FROM push_subscriptions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete push subscription: %w", err)
	}
	return nil
}

// DeleteByEndpoint removes a subscription the push service reported as gone.
func (s *PushStore) DeleteByEndpoint(endpoint string) error {
	_, err := s.db.Exec(`DELETE FROM push_subscriptions WHERE endpoint = ?`, endpoint)
	if err != nil {
		return fmt.Errorf("delete push subscription by endpoint: %w", err)
	}
	return nil
}

// GetPreference returns the user's reminder preference, defaulting to
// disabled at 09:00 when no row exists.
func (s *PushStore) GetPreference(userID int64) (*model.PushPreference, error) {
	var p model.PushPreference
	var enabled int
	err := s.db.QueryRow(
		`SELECT user_id, daily_reminder, reminder_hour FROM push_preferences WHERE user_id = ?`,
		userID,
	).Scan(&p.UserID, &enabled, &p.ReminderHour)
	if err == sql.ErrNoRows {
		return &model.PushPreference{UserID: userID, DailyReminder: false, ReminderHour: 9}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get push preference: %w", err)
	}
	p.DailyReminder = enabled != 0
	return &p, nil
}

func (s *PushStore) SetPreference(userID int64, dailyReminder bool, reminderHour int) error {
	var enabled int
	if dailyReminder {
		enabled = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO push_preferences (user_id, daily_reminder, reminder_hour) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET daily_reminder = excluded.daily_reminder,
		     reminder_hour = excluded.reminder_hour`,
		userID, enabled, reminderHour,
	)
	if err != nil {
		return fmt.Errorf("set push preference: %w", err)
	}
	return nil
}

// ListReminderUsers returns ids of users who enabled the daily reminder for
// the given hour.
func (s *PushStore) ListReminderUsers(hour int) ([]int64, error) {
	rows, err := s.db.Query(
		`SELECT user_id FROM push_preferences WHERE daily_reminder = 1 AND reminder_hour = ?`,
		hour,
	)
	if err != nil {
		return nil, fmt.Errorf("list reminder users: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan reminder user: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// WasSent reports whether the daily reminder already went out to the user on
// the given day (formatted 2006-01-02).
func (s *PushStore) WasSent(userID int64, day string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM push_sent WHERE user_id = ? AND day = ?`,
		userID, day,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check push sent: %w", err)
	}
	return n > 0, nil
}

func (s *PushStore) RecordSent(userID int64, day string) error {
	_, err := s.db.Exec(
		`INSERT INTO push_sent (user_id, day) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		userID, day,
	)
	if err != nil {
		return fmt.Errorf("record push sent: %w", err)
	}
	return nil
}
