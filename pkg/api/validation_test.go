package api

import "testing"

func TestRegisterRequestValidate(t *testing.T) {
	valid := RegisterRequest{Email: "alice@example.com", Username: "alice", Password: "secret1"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	tests := []struct {
		name      string
		req       RegisterRequest
		wantParam string
	}{
		{"missing email", RegisterRequest{Username: "alice", Password: "secret1"}, ""},
		{"missing username", RegisterRequest{Email: "a@b.com", Password: "secret1"}, ""},
		{"missing password", RegisterRequest{Email: "a@b.com", Username: "alice"}, ""},
		{"short password", RegisterRequest{Email: "a@b.com", Username: "alice", Password: "12345"}, "password"},
		{"short username", RegisterRequest{Email: "a@b.com", Username: "al", Password: "secret1"}, "username"},
		{"bad email", RegisterRequest{Email: "not-an-email", Username: "alice", Password: "secret1"}, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if err.Type != ErrorTypeInvalidRequest {
				t.Errorf("error type = %q, want %q", err.Type, ErrorTypeInvalidRequest)
			}
			if err.Param != tt.wantParam {
				t.Errorf("error param = %q, want %q", err.Param, tt.wantParam)
			}
		})
	}
}

func TestRegisterRequestNormalize(t *testing.T) {
	req := RegisterRequest{Email: "  Alice@Example.COM ", Username: " alice ", Password: "secret1"}
	req.Normalize()

	if req.Email != "alice@example.com" {
		t.Errorf("email = %q, want lowercased trimmed form", req.Email)
	}
	if req.Username != "alice" {
		t.Errorf("username = %q, want %q", req.Username, "alice")
	}
}

func TestLoginRequestValidate(t *testing.T) {
	if err := (&LoginRequest{Email: "a@b.com", Password: "x"}).Validate(); err != nil {
		t.Errorf("valid login rejected: %v", err)
	}
	if err := (&LoginRequest{Email: "a@b.com"}).Validate(); err == nil {
		t.Error("missing password accepted")
	}
	if err := (&LoginRequest{Password: "x"}).Validate(); err == nil {
		t.Error("missing email accepted")
	}
}

func TestCreateBookRequestValidate(t *testing.T) {
	valid := CreateBookRequest{Title: "t", Caption: "c", Image: "data:image/png;base64,AA==", Rating: 4}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	missing := CreateBookRequest{Title: "t", Caption: "c", Rating: 4}
	if err := missing.Validate(); err == nil {
		t.Error("missing image accepted")
	}

	for _, rating := range []int{-1, 6, 100} {
		req := valid
		req.Rating = rating
		err := req.Validate()
		if err == nil {
			t.Errorf("rating %d accepted", rating)
			continue
		}
		if err.Param != "rating" {
			t.Errorf("rating %d: param = %q, want %q", rating, err.Param, "rating")
		}
	}
}
