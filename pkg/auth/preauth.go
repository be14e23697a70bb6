// Package auth computes Zimbra preauth values.
//
// A preauth value lets a trusted application obtain an auth token for an
// account without its password, using the domain's preauth key:
//
//	hex(HMAC-SHA1(key, account|by|expires|timestamp))
//
// with expires and timestamp in milliseconds.
package auth

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// By names how the account is identified.
type By string

const (
	ByName             By = "name"
	ByID               By = "id"
	ByForeignPrincipal By = "foreignPrincipal"
)

var (
	// ErrMissingPreAuthKey is returned when no domain key is given.
	ErrMissingPreAuthKey = errors.New("preauth key is required")

	// ErrInvalidBy is returned for an unknown account selector.
	ErrInvalidBy = errors.New("invalid account selector")
)

// ParseBy validates an account selector. The empty string means ByName.
func ParseBy(s string) (By, error) {
	switch By(s) {
	case "":
		return ByName, nil
	case ByName, ByID, ByForeignPrincipal:
		return By(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidBy, s)
}

// PreAuth holds the signed fields of a preauth request.
type PreAuth struct {
	Account string
	By      By
	// Timestamp defaults to the current time.
	Timestamp time.Time
	// Expires is the token lifetime; zero uses the server default.
	Expires time.Duration
}

// TimestampMillis returns the timestamp as sent in the preauth element.
func (p PreAuth) TimestampMillis() int64 {
	return p.Timestamp.UnixMilli()
}

// ExpiresMillis returns the expiry as sent in the preauth element.
func (p PreAuth) ExpiresMillis() int64 {
	return p.Expires.Milliseconds()
}

// Compute returns the preauth value for p, filling in defaults on a copy.
func Compute(key string, p PreAuth) (string, PreAuth, error) {
	if key == "" {
		return "", p, ErrMissingPreAuthKey
	}
	if p.Account == "" {
		return "", p, errors.New("account is required")
	}
	by, err := ParseBy(string(p.By))
	if err != nil {
		return "", p, err
	}
	p.By = by
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now()
	}

	mac := hmac.New(sha1.New, []byte(key))
	fmt.Fprintf(mac, "%s|%s|%d|%d", p.Account, p.By, p.ExpiresMillis(), p.TimestampMillis())
	return hex.EncodeToString(mac.Sum(nil)), p, nil
}
