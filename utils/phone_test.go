package utils

import "testing"

func TestNormalizePhoneNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+250 788 123 456", "+250788123456"},
		{"(078) 812-3456", "0788123456"},
		{"  0788123456  ", "0788123456"},
		{"+1 (555) 010-9999", "+15550109999"},
		{"no digits", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizePhoneNumber(tc.in); got != tc.want {
			t.Fatalf("NormalizePhoneNumber(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
