package auth

import (
	"errors"
	"testing"
)

func TestRequireOwner(t *testing.T) {
	owner := &Principal{UserID: "user_aaaaaaaaaaaaaaaaaaaaaaaa"}

	if err := RequireOwner(owner, "user_aaaaaaaaaaaaaaaaaaaaaaaa"); err != nil {
		t.Errorf("owner rejected: %v", err)
	}

	err := RequireOwner(owner, "user_bbbbbbbbbbbbbbbbbbbbbbbb")
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("non-owner: err = %v, want ErrForbidden", err)
	}

	if err := RequireOwner(nil, "user_aaaaaaaaaaaaaaaaaaaaaaaa"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("nil principal: err = %v, want ErrUnauthenticated", err)
	}
}
