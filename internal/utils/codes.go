package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// randomCode builds an unambiguous uppercase code of the given length.
func randomCode(n int) string {
	out := make([]byte, n)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the platform RNG is broken; fall
			// back to a uuid-derived byte so codes stay unique.
			out[i] = uuid.NewString()[i%8]
			continue
		}
		out[i] = codeAlphabet[idx.Int64()]
	}
	return string(out)
}

// NewBookingCode returns a booking code like FBK-7K2M9QXW.
func NewBookingCode() string {
	return fmt.Sprintf("FBK-%s", randomCode(8))
}

// NewTicketCode returns a ticket code like FTK-4R8TPW2N.
func NewTicketCode() string {
	return fmt.Sprintf("FTK-%s", randomCode(8))
}

// NewQRToken returns the opaque token embedded in ticket QR codes.
func NewQRToken() string {
	return uuid.NewString()
}

// NewExternalID returns the id sent to the payment gateway.
func NewExternalID() string {
	return uuid.NewString()
}
