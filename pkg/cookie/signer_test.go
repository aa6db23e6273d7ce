package cookie_test

import (
	"testing"

	"github.com/stackmelt/funcgate/pkg/cookie"
)

func TestHMACSigner(t *testing.T) {
	s := cookie.HMACSigner{}

	t.Run("sign and unsign", func(t *testing.T) {
		signed, err := s.Sign("payload", "secret")
		if err != nil {
			t.Fatalf("Sign() error: %v", err)
		}

		data, ok := s.Unsign(signed, "secret")
		if !ok {
			t.Fatal("Unsign() failed on valid signature")
		}
		if data != "payload" {
			t.Errorf("Unsign() = %q, want %q", data, "payload")
		}
	})

	t.Run("wrong secret fails", func(t *testing.T) {
		signed, _ := s.Sign("payload", "secret")
		if _, ok := s.Unsign(signed, "other"); ok {
			t.Error("Unsign() succeeded with wrong secret")
		}
	})

	t.Run("malformed input fails", func(t *testing.T) {
		for _, signed := range []string{"", "no-dot", "bad base64.!!!", "!!!.bad"} {
			if _, ok := s.Unsign(signed, "secret"); ok {
				t.Errorf("Unsign(%q) succeeded", signed)
			}
		}
	})
}
