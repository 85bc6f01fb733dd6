package utils

import "testing"

func TestFormatRupiah(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "Rp0"},
		{500, "Rp500"},
		{1500, "Rp1.500"},
		{1500000, "Rp1.500.000"},
		{-25000, "-Rp25.000"},
	}
	for _, tc := range cases {
		if got := FormatRupiah(tc.in); got != tc.want {
			t.Errorf("FormatRupiah(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseRupiahToInt(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"Rp 1.000", 1000},
		{"rp1.500.000", 1500000},
		{"25,000", 25000},
		{"500", 500},
	}
	for _, tc := range cases {
		got, err := ParseRupiahToInt(tc.in)
		if err != nil {
			t.Errorf("ParseRupiahToInt(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseRupiahToInt(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"", "Rp", "seribu"} {
		if _, err := ParseRupiahToInt(bad); err == nil {
			t.Errorf("ParseRupiahToInt(%q) harus gagal", bad)
		}
	}
}
