package utils

import "testing"

const testSecret = "unit-test-secret"

func TestSessionTokenRoundTrip(t *testing.T) {
	tok, err := NewSessionToken(testSecret, 42, "dana@office.example", "intern", 7)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if tok.Token == "" {
		t.Fatal("empty token string")
	}

	id, email, role, err := ParseSessionToken(testSecret, tok.Token)
	if err != nil {
		t.Fatalf("ParseSessionToken: %v", err)
	}
	if id != 42 {
		t.Errorf("id = %d, want 42", id)
	}
	if email != "dana@office.example" {
		t.Errorf("email = %q", email)
	}
	if role != "intern" {
		t.Errorf("role = %q, want intern", role)
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	tok, err := NewSessionToken(testSecret, 1, "a@b.c", "admin", 1)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if _, _, _, err := ParseSessionToken("some-other-secret", tok.Token); err == nil {
		t.Fatal("token verified under the wrong secret")
	}
}

func TestSessionTokenExpired(t *testing.T) {
	tok, err := NewSessionToken(testSecret, 1, "a@b.c", "intern", -1)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if _, _, _, err := ParseSessionToken(testSecret, tok.Token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestSessionTokenGarbage(t *testing.T) {
	if _, _, _, err := ParseSessionToken(testSecret, "not.a.jwt"); err == nil {
		t.Fatal("garbage token accepted")
	}
}
