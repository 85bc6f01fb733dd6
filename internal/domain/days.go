package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DaySet is a bitset of ISO weekdays (1=Senin .. 7=Minggu). The database
// keeps the legacy "1,3,5" string column; conversion happens only at the
// repository boundary via ParseDaySet / String.
type DaySet uint8

var dayNames = map[int]string{
	1: "Senin",
	2: "Selasa",
	3: "Rabu",
	4: "Kamis",
	5: "Jumat",
	6: "Sabtu",
	7: "Minggu",
}

// ParseDaySet parses comma/semicolon separated weekday numbers.
func ParseDaySet(raw string) (DaySet, error) {
	var set DaySet
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' '
	})
	if len(parts) == 0 {
		return 0, fmt.Errorf("hari operasional kosong")
	}
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 1 || n > 7 {
			return 0, fmt.Errorf("hari %q tidak valid (harus 1-7)", p)
		}
		set = set.With(n)
	}
	return set, nil
}

func (s DaySet) With(day int) DaySet {
	if day < 1 || day > 7 {
		return s
	}
	return s | (1 << uint(day-1))
}

func (s DaySet) Has(day int) bool {
	if day < 1 || day > 7 {
		return false
	}
	return s&(1<<uint(day-1)) != 0
}

func (s DaySet) Intersect(other DaySet) DaySet {
	return s & other
}

func (s DaySet) IsEmpty() bool { return s == 0 }

// Days returns the member weekdays in ascending order.
func (s DaySet) Days() []int {
	out := []int{}
	for d := 1; d <= 7; d++ {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// String renders the storage form, e.g. "1,3,5".
func (s DaySet) String() string {
	days := s.Days()
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, strconv.Itoa(d))
	}
	return strings.Join(parts, ",")
}

// Names returns Indonesian day names, ascending.
func (s DaySet) Names() []string {
	days := s.Days()
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, dayNames[d])
	}
	return out
}

// MarshalJSON renders the "1,3,5" form instead of the raw bitmask.
func (s DaySet) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(s.String())), nil
}

func (s *DaySet) UnmarshalJSON(b []byte) error {
	raw, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("days harus string, contoh \"1,3,5\"")
	}
	set, err := ParseDaySet(raw)
	if err != nil {
		return err
	}
	*s = set
	return nil
}

// ISOWeekday maps time.Weekday to ISO numbering (Monday=1 .. Sunday=7).
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// DayName returns the Indonesian name for an ISO weekday number.
func DayName(day int) string {
	if n, ok := dayNames[day]; ok {
		return n
	}
	return strconv.Itoa(day)
}
