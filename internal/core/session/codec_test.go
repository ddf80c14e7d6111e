package session

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestCodec(t *testing.T, now time.Time) *Codec {
	t.Helper()
	c, err := NewCodec([]byte("test-secret-with-at-least-32-bytes!!"), 7*24*time.Hour, WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return c
}

func TestCodec_RoundTrip(t *testing.T) {
	c := newTestCodec(t, fixedNow)
	caller := domain.Caller{ID: "u-1", Email: "alice@example.com", Role: domain.RoleEmployee}

	token, expiresAt, err := c.Issue(caller)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if got := strings.Count(token, "."); got != 2 {
		t.Fatalf("expected 3 segments, got %d dots", got)
	}
	if !expiresAt.Equal(fixedNow.Add(7 * 24 * time.Hour)) {
		t.Fatalf("unexpected expiry %v", expiresAt)
	}

	claims, err := c.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Caller() != caller {
		t.Fatalf("caller mismatch: got %+v want %+v", claims.Caller(), caller)
	}
	if claims.Subject != caller.ID {
		t.Fatalf("subject = %q, want %q", claims.Subject, caller.ID)
	}
	if d := claims.IssuedAt.Time.Sub(fixedNow); d < -time.Second || d > time.Second {
		t.Fatalf("issued-at drift %v", d)
	}
}

func TestCodec_SignatureBitFlipsRejected(t *testing.T) {
	c := newTestCodec(t, fixedNow)
	token, _, err := c.Issue(domain.Caller{ID: "u-1", Email: "a@example.com", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	parts := strings.Split(token, ".")
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		t.Fatalf("decode signature: %v", err)
	}

	for i := range sig {
		for bit := 0; bit < 8; bit++ {
			mutated := append([]byte(nil), sig...)
			mutated[i] ^= 1 << bit
			forged := parts[0] + "." + parts[1] + "." + base64.RawURLEncoding.EncodeToString(mutated)

			if _, err := c.Verify(forged); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("byte %d bit %d: expected ErrInvalidToken, got %v", i, bit, err)
			}
		}
	}

	// The encoded segment too: every single-bit change of every character,
	// including the trailing character whose low bits are padding.
	for i := 0; i < len(parts[2]); i++ {
		for bit := 0; bit < 8; bit++ {
			mutated := []byte(parts[2])
			mutated[i] ^= 1 << bit
			forged := parts[0] + "." + parts[1] + "." + string(mutated)

			if _, err := c.Verify(forged); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("char %d bit %d (%q): expected ErrInvalidToken, got %v", i, bit, mutated[i], err)
			}
		}
	}
}

func TestCodec_TamperedClaimsRejected(t *testing.T) {
	c := newTestCodec(t, fixedNow)
	token, _, _ := c.Issue(domain.Caller{ID: "u-2", Email: "c@example.com", Role: domain.RoleClient})

	parts := strings.Split(token, ".")
	payload, _ := base64.RawURLEncoding.DecodeString(parts[1])
	escalated := strings.Replace(string(payload), `"role":"client"`, `"role":"admin"`, 1)
	forged := parts[0] + "." + base64.RawURLEncoding.EncodeToString([]byte(escalated)) + "." + parts[2]

	if _, err := c.Verify(forged); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_Expired(t *testing.T) {
	issuer := newTestCodec(t, fixedNow.Add(-7*24*time.Hour-time.Second))
	token, expiresAt, err := issuer.Issue(domain.Caller{ID: "u-1", Role: domain.RoleClient})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !expiresAt.Before(fixedNow) {
		t.Fatalf("expected token to be expired at %v, expires %v", fixedNow, expiresAt)
	}

	verifier := newTestCodec(t, fixedNow)
	_, err = verifier.Verify(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expired token must be an authentication failure, got %v", err)
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	c := newTestCodec(t, fixedNow)
	token, _, _ := c.Issue(domain.Caller{ID: "u-1", Role: domain.RoleClient})

	other, err := NewCodec([]byte("a-completely-different-secret-value"), time.Hour, WithClock(func() time.Time { return fixedNow }))
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_MalformedTokens(t *testing.T) {
	c := newTestCodec(t, fixedNow)
	valid, _, _ := c.Issue(domain.Caller{ID: "u-1", Role: domain.RoleClient})

	unsigned := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`)) + "." +
		base64.RawURLEncoding.EncodeToString([]byte(`{"id":"u-1","role":"admin","exp":9999999999}`)) + "."

	cases := map[string]string{
		"empty":         "",
		"two segments":  "abc.def",
		"four segments": valid + ".extra",
		"garbage":       "not.a.jwt",
		"alg none":      unsigned,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := c.Verify(token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestCodec_IssueRequiresIdentity(t *testing.T) {
	c := newTestCodec(t, fixedNow)
	if _, _, err := c.Issue(domain.Caller{Role: domain.RoleAdmin}); err == nil {
		t.Fatal("expected error for missing id")
	}
	if _, _, err := c.Issue(domain.Caller{ID: "u-1", Role: "guest"}); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestNewCodec_RequiresSecret(t *testing.T) {
	if _, err := NewCodec(nil, time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
	c, err := NewCodec([]byte("s"), 0)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	if c.Lifetime() != DefaultLifetime {
		t.Fatalf("lifetime = %v, want %v", c.Lifetime(), DefaultLifetime)
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"bearer   abc.def.ghi ", "abc.def.ghi", true},
		{"Token abc", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := BearerToken(tc.header)
		if got != tc.token || ok != tc.ok {
			t.Errorf("BearerToken(%q) = (%q, %v), want (%q, %v)", tc.header, got, ok, tc.token, tc.ok)
		}
	}
}
