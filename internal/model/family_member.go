package model

import "time"

// FamilyMember is a node on a user's family tree canvas. X and Y are the
// freeform drag positions; PlatformUserID is a weak reference to a registered
// User, set only through the explicit link operation.
type FamilyMember struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	Name           string    `json:"name"`
	DateOfBirth    string    `json:"dateOfBirth"`
	PlatformUserID *int64    `json:"platformUserId"`
	X              int       `json:"x"`
	Y              int       `json:"y"`
	CreatedAt      time.Time `json:"createdAt"`
}

// FamilyRelationship declares a parent/child edge between two family members.
// The table exists in the schema for future use; no operation exposes it yet.
type FamilyRelationship struct {
	ID             int64 `json:"id"`
	ParentMemberID int64 `json:"parentMemberId"`
	ChildMemberID  int64 `json:"childMemberId"`
}
