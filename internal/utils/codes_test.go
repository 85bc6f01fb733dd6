package utils

import (
	"strings"
	"testing"
)

func TestBookingAndTicketCodes(t *testing.T) {
	bk := NewBookingCode()
	if !strings.HasPrefix(bk, "FBK-") || len(bk) != 12 {
		t.Errorf("kode booking = %q", bk)
	}
	tk := NewTicketCode()
	if !strings.HasPrefix(tk, "FTK-") || len(tk) != 12 {
		t.Errorf("kode tiket = %q", tk)
	}

	// Ambiguous characters are excluded from the alphabet.
	for _, c := range bk[4:] {
		if strings.ContainsRune("01IO", c) {
			t.Errorf("kode mengandung karakter ambigu %q: %s", c, bk)
		}
	}
}

func TestCodesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := NewTicketCode()
		if seen[code] {
			t.Fatalf("kode duplikat: %s", code)
		}
		seen[code] = true
	}
	if NewQRToken() == NewQRToken() {
		t.Error("token QR harus unik")
	}
}
