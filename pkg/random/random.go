package random

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Hex returns n random bytes as a lowercase hex string.
func Hex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Code returns an uppercase hex code of n random bytes.
func Code(n int) (string, error) {
	s, err := Hex(n)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(s), nil
}

// OrderNumber returns a human-readable unique order number, e.g. ORD-20260830-3FA9C2.
func OrderNumber() (string, error) {
	suffix, err := Code(3)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102"), suffix), nil
}

// TicketNumber returns a unique ticket number, e.g. TKT-8C1F2AB4.
func TicketNumber() (string, error) {
	suffix, err := Code(4)
	if err != nil {
		return "", err
	}
	return "TKT-" + suffix, nil
}

// ScanCode returns the opaque value encoded in a ticket's QR code.
func ScanCode() (string, error) {
	return Hex(16)
}
