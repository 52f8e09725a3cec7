package numwords

import (
	"strings"
	"testing"

	apperrors "github.com/kbukum/speechprep/errors"
)

func TestFrench_Integers(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "zéro"},
		{"1", "un"},
		{"16", "seize"},
		{"17", "dix-sept"},
		{"21", "vingt et un"},
		{"22", "vingt-deux"},
		{"31", "trente et un"},
		{"70", "soixante-dix"},
		{"71", "soixante et onze"},
		{"77", "soixante-dix-sept"},
		{"80", "quatre-vingts"},
		{"81", "quatre-vingt-un"},
		{"90", "quatre-vingt-dix"},
		{"91", "quatre-vingt-onze"},
		{"99", "quatre-vingt-dix-neuf"},
		{"100", "cent"},
		{"101", "cent un"},
		{"180", "cent quatre-vingts"},
		{"200", "deux cents"},
		{"201", "deux cent un"},
		{"280", "deux cent quatre-vingts"},
		{"1000", "mille"},
		{"1001", "mille un"},
		{"1959", "mille neuf cent cinquante-neuf"},
		{"2019", "deux mille dix-neuf"},
		{"21000", "vingt et un mille"},
		{"50000", "cinquante mille"},
		{"80000", "quatre-vingt mille"},
		{"200000", "deux cent mille"},
		{"260000", "deux cent soixante mille"},
		{"1000000", "un million"},
		{"2000000", "deux millions"},
		{"80000000", "quatre-vingts millions"},
		{"200000000", "deux cents millions"},
		{"1234567", "un million deux cent trente-quatre mille cinq cent soixante-sept"},
		{"3000000000", "trois milliards"},
		{"1000000000000", "un billion"},
		{"1000000000000000", "un billiard"},
		{"007", "sept"},
		{"+5", "cinq"},
		{"-5", "moins cinq"},
		{"1e3", "mille"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := French(tc.in)
			if err != nil {
				t.Fatalf("French(%q) error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("French(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFrench_Decimals(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3.14", "trois virgule un quatre"},
		{"0.6", "zéro virgule six"},
		{"0.05", "zéro virgule zéro cinq"},
		{"2.0", "deux"},
		{"2.50", "deux virgule cinq"},
		{".5", "zéro virgule cinq"},
		{"5.", "cinq"},
		{"-1.5", "moins un virgule cinq"},
		{"-0.0", "zéro"},
		{"15e-1", "un virgule cinq"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := French(tc.in)
			if err != nil {
				t.Fatalf("French(%q) error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("French(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFrench_Invalid(t *testing.T) {
	for _, in := range []string{"", "-", ".", "0.6.", "12:30", "1,5", "e5", "3e", "1e+", "abc", "²"} {
		t.Run(in, func(t *testing.T) {
			_, err := French(in)
			if err == nil {
				t.Fatalf("French(%q) should fail", in)
			}
			if !apperrors.HasCode(err, apperrors.ErrCodeInvalidNumeral) {
				t.Errorf("expected INVALID_NUMERAL, got %v", err)
			}
		})
	}
}

func TestFrench_TooLong(t *testing.T) {
	_, err := French("1" + strings.Repeat("0", MaxIntegerDigits))
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidNumeral) {
		t.Fatalf("expected INVALID_NUMERAL for an oversized numeral, got %v", err)
	}
	if _, err := French(strings.Repeat("9", MaxIntegerDigits)); err != nil {
		t.Errorf("largest spellable numeral failed: %v", err)
	}
}

func TestDigit(t *testing.T) {
	want := []string{"zéro", "un", "deux", "trois", "quatre", "cinq", "six", "sept", "huit", "neuf"}
	for i, w := range want {
		if got := Digit(byte('0' + i)); got != w {
			t.Errorf("Digit(%d) = %q, want %q", i, got, w)
		}
	}
}

func TestCardinal(t *testing.T) {
	if got := Cardinal(0); got != "zéro" {
		t.Errorf("Cardinal(0) = %q", got)
	}
	if got := Cardinal(71); got != "soixante et onze" {
		t.Errorf("Cardinal(71) = %q", got)
	}
	if got := Cardinal(18446744073709551615); !strings.HasPrefix(got, "dix-huit trillions") {
		t.Errorf("Cardinal(max uint64) = %q", got)
	}
}
