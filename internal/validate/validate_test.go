package validate

import (
	"strings"
	"testing"
)

type sample struct {
	Username    string `validate:"required,min=3"`
	DateOfBirth string `validate:"required,datetime=2006-01-02"`
	CategoryID  int64  `validate:"gte=1,lte=12"`
}

func TestStructValid(t *testing.T) {
	err := Struct(sample{Username: "alice", DateOfBirth: "1990-01-01", CategoryID: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStructRequired(t *testing.T) {
	err := Struct(sample{DateOfBirth: "1990-01-01", CategoryID: 1})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "username is required") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestStructBadDate(t *testing.T) {
	err := Struct(sample{Username: "alice", DateOfBirth: "January 1st", CategoryID: 1})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "dateOfBirth") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestStructRange(t *testing.T) {
	err := Struct(sample{Username: "alice", DateOfBirth: "1990-01-01", CategoryID: 13})
	if err == nil {
		t.Fatal("expected error for category id out of range")
	}
}

func TestStructJoinsMessages(t *testing.T) {
	err := Struct(sample{CategoryID: 0})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), ";") {
		t.Errorf("expected joined messages, got %q", err.Error())
	}
}
