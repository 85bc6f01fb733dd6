package domain

import (
	"testing"
	"time"
)

func TestParseDaySet(t *testing.T) {
	set, err := ParseDaySet("1,3,5")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	for _, d := range []int{1, 3, 5} {
		if !set.Has(d) {
			t.Errorf("hari %d harus ada", d)
		}
	}
	for _, d := range []int{2, 4, 6, 7} {
		if set.Has(d) {
			t.Errorf("hari %d tidak boleh ada", d)
		}
	}
	if got := set.String(); got != "1,3,5" {
		t.Errorf("String() = %q, want 1,3,5", got)
	}
}

func TestParseDaySetInvalid(t *testing.T) {
	for _, raw := range []string{"", "0", "8", "senin", "1,,x"} {
		if _, err := ParseDaySet(raw); err == nil {
			t.Errorf("ParseDaySet(%q) harus gagal", raw)
		}
	}
}

func TestDaySetIntersect(t *testing.T) {
	a, _ := ParseDaySet("1,2,3")
	b, _ := ParseDaySet("3,4,5")
	shared := a.Intersect(b)
	if shared.IsEmpty() {
		t.Fatal("irisan tidak boleh kosong")
	}
	if got := shared.String(); got != "3" {
		t.Errorf("irisan = %q, want 3", got)
	}

	c, _ := ParseDaySet("6,7")
	if !a.Intersect(c).IsEmpty() {
		t.Error("irisan 1,2,3 dengan 6,7 harus kosong")
	}
}

func TestDaySetNames(t *testing.T) {
	set, _ := ParseDaySet("6,7")
	names := set.Names()
	if len(names) != 2 || names[0] != "Sabtu" || names[1] != "Minggu" {
		t.Errorf("Names() = %v", names)
	}
}

func TestISOWeekday(t *testing.T) {
	// 2026-08-24 is a Monday, 2026-08-30 a Sunday.
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	if got := ISOWeekday(monday); got != 1 {
		t.Errorf("Senin = %d, want 1", got)
	}
	if got := ISOWeekday(sunday); got != 7 {
		t.Errorf("Minggu = %d, want 7", got)
	}
}

func TestDaySetJSON(t *testing.T) {
	set, _ := ParseDaySet("1,3,5")
	b, err := set.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if string(b) != `"1,3,5"` {
		t.Errorf("MarshalJSON = %s", b)
	}

	var out DaySet
	if err := out.UnmarshalJSON([]byte(`"2,4"`)); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if !out.Has(2) || !out.Has(4) || out.Has(1) {
		t.Errorf("unmarshal hasil salah: %v", out.Days())
	}
}
