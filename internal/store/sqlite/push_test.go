package sqlite

import (
	"testing"
	"time"
)

func TestPushSubscriptionUpsert(t *testing.T) {
	db := openTestDB(t)
	s := New(db, time.Hour)
	ps := NewPushStore(db)

	u, err := s.Users.Create("alice", "h", "Alice A", "1990-01-01")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	sub, err := ps.CreateSubscription(u.ID, "https://push.example/ep1", "p256dh", "auth", "Firefox")
	if err != nil {
		t.Fatalf("create subscription: %v", err)
	}
	if sub.ID == 0 || sub.Endpoint != "https://push.example/ep1" {
		t.Fatalf("unexpected subscription: %+v", sub)
	}

	// Same endpoint again refreshes the keys instead of duplicating.
	again, err := ps.CreateSubscription(u.ID, "https://push.example/ep1", "new-key", "new-auth", "Firefox")
	if err != nil {
		t.Fatalf("upsert subscription: %v", err)
	}
	if again.ID != sub.ID {
		t.Errorf("upsert created new row: %d vs %d", again.ID, sub.ID)
	}
	if again.P256dhKey != "new-key" {
		t.Errorf("p256dh = %q, want new-key", again.P256dhKey)
	}

	subs, err := ps.ListByUser(u.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subs) != 1 {
		t.Errorf("expected 1 subscription, got %d", len(subs))
	}
}

func TestPushDeleteScopedToOwner(t *testing.T) {
	db := openTestDB(t)
	s := New(db, time.Hour)
	ps := NewPushStore(db)

	alice, _ := s.Users.Create("alice", "h", "Alice A", "1990-01-01")
	bob, _ := s.Users.Create("bob", "h", "Bob B", "1990-01-01")

	sub, err := ps.CreateSubscription(alice.ID, "https://push.example/ep1", "k", "a", "")
	if err != nil {
		t.Fatalf("create subscription: %v", err)
	}

	// Bob cannot delete Alice's subscription.
	if err := ps.DeleteSubscription(sub.ID, bob.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := ps.GetByEndpoint(sub.Endpoint); got == nil {
		t.Fatal("subscription deleted by non-owner")
	}

	if err := ps.DeleteSubscription(sub.ID, alice.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := ps.GetByEndpoint(sub.Endpoint); got != nil {
		t.Fatal("subscription survived owner delete")
	}
}

func TestPushPreferenceDefaultsAndUpsert(t *testing.T) {
	db := openTestDB(t)
	s := New(db, time.Hour)
	ps := NewPushStore(db)

	u, _ := s.Users.Create("alice", "h", "Alice A", "1990-01-01")

	pref, err := ps.GetPreference(u.ID)
	if err != nil {
		t.Fatalf("get preference: %v", err)
	}
	if pref.DailyReminder || pref.ReminderHour != 9 {
		t.Errorf("unexpected default: %+v", pref)
	}

	if err := ps.SetPreference(u.ID, true, 20); err != nil {
		t.Fatalf("set preference: %v", err)
	}
	pref, _ = ps.GetPreference(u.ID)
	if !pref.DailyReminder || pref.ReminderHour != 20 {
		t.Errorf("preference not saved: %+v", pref)
	}

	users, err := ps.ListReminderUsers(20)
	if err != nil {
		t.Fatalf("list reminder users: %v", err)
	}
	if len(users) != 1 || users[0] != u.ID {
		t.Errorf("reminder users = %v", users)
	}
	if users, _ := ps.ListReminderUsers(8); len(users) != 0 {
		t.Errorf("expected no users at hour 8, got %v", users)
	}
}

func TestPushSentLog(t *testing.T) {
	db := openTestDB(t)
	s := New(db, time.Hour)
	ps := NewPushStore(db)

	u, _ := s.Users.Create("alice", "h", "Alice A", "1990-01-01")

	sent, err := ps.WasSent(u.ID, "2025-06-15")
	if err != nil {
		t.Fatalf("was sent: %v", err)
	}
	if sent {
		t.Error("expected not sent")
	}

	if err := ps.RecordSent(u.ID, "2025-06-15"); err != nil {
		t.Fatalf("record sent: %v", err)
	}
	// Recording twice is harmless.
	if err := ps.RecordSent(u.ID, "2025-06-15"); err != nil {
		t.Fatalf("record sent again: %v", err)
	}

	sent, _ = ps.WasSent(u.ID, "2025-06-15")
	if !sent {
		t.Error("expected sent after record")
	}
	sent, _ = ps.WasSent(u.ID, "2025-06-16")
	if sent {
		t.Error("different day should not be marked sent")
	}
}
