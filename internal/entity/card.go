package domain

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidCard = errors.New("invalid card descriptor")

	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	cardCVVRe    = regexp.MustCompile(`^\d{3,4}$`)
	cardExpiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{2}|\d{4})$`)
)

// Card is the raw descriptor supplied at checkout. It travels only inside
// the payment-requested event; the order store never sees it.
type Card struct {
	Number string `json:"number"`
	CVV    string `json:"cvv"`
	Expiry string `json:"expiry"` // MM/YY or MM/YYYY
}

// Validate checks the descriptor format: a 16-digit number (spaces and
// dashes tolerated), a 3-4 digit security code and an MM/YY or MM/YYYY
// expiry. It does not verify the card against any issuer.
func (c Card) Validate() error {
	if !cardNumberRe.MatchString(normalizePAN(c.Number)) {
		return ErrInvalidCard
	}
	if !cardCVVRe.MatchString(c.CVV) {
		return ErrInvalidCard
	}
	if !cardExpiryRe.MatchString(c.Expiry) {
		return ErrInvalidCard
	}
	return nil
}

// LastFour returns the trailing digits of the card number.
func (c Card) LastFour() string {
	n := normalizePAN(c.Number)
	if len(n) < 4 {
		return n
	}
	return n[len(n)-4:]
}

// Masked renders the descriptor with all but the last four digits hidden.
func (c Card) Masked() string {
	return "**** **** **** " + c.LastFour()
}

func normalizePAN(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "-", "")
}
