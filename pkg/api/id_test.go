package api

import "testing"

func TestNewUserID(t *testing.T) {
	id := NewUserID()
	if !ValidateUserID(id) {
		t.Errorf("generated user ID %q failed validation", id)
	}
	if id == NewUserID() {
		t.Error("two generated IDs are identical")
	}
}

func TestNewBookID(t *testing.T) {
	id := NewBookID()
	if !ValidateBookID(id) {
		t.Errorf("generated book ID %q failed validation", id)
	}
}

func TestValidateBookID(t *testing.T) {
	bad := []string{
		"",
		"book_",
		"book_short",
		"user_abcdefghijklmnopqrstuvwx", // wrong prefix
		"book_abcdefghijklmnopqrstuvw!", // invalid char
		"book_abcdefghijklmnopqrstuvwxy", // too long
	}
	for _, id := range bad {
		if ValidateBookID(id) {
			t.Errorf("ValidateBookID(%q) = true, want false", id)
		}
	}
}
