package config

import (
	"reflect"
	"testing"
)

func TestParseDomains(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{"office.example", []string{"office.example"}},
		{"office.example,hq.example", []string{"office.example", "hq.example"}},
		{" Office.Example , HQ.example ,", []string{"office.example", "hq.example"}},
		{",,,", nil},
	}
	for _, tc := range cases {
		got := ParseDomains(tc.raw)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParseDomains(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestGetenvInt(t *testing.T) {
	t.Setenv("X_TEST_INT", "42")
	if got := getenvInt("X_TEST_INT", 7); got != 42 {
		t.Errorf("set: got %d, want 42", got)
	}
	if got := getenvInt("X_TEST_INT_UNSET", 7); got != 7 {
		t.Errorf("unset: got %d, want default 7", got)
	}
	t.Setenv("X_TEST_INT_BAD", "not-a-number")
	if got := getenvInt("X_TEST_INT_BAD", 7); got != 7 {
		t.Errorf("unparsable: got %d, want default 7", got)
	}
}

func TestGetenv(t *testing.T) {
	t.Setenv("X_TEST_STR", "value")
	if got := getenv("X_TEST_STR", "def"); got != "value" {
		t.Errorf("set: got %q", got)
	}
	if got := getenv("X_TEST_STR_UNSET", "def"); got != "def" {
		t.Errorf("unset: got %q, want default", got)
	}
}
