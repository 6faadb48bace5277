// Package auth implements bearer-token authentication with two privilege
// tiers. Keys are loaded once at startup and never mutated afterwards.
package auth

import "crypto/subtle"

// Tier is the privilege level required by a route or granted to a request.
type Tier int

const (
	// TierPublic routes require no credential (health, docs, metrics).
	TierPublic Tier = iota
	// TierStandard routes accept any configured API key.
	TierStandard
	// TierAdmin routes accept admin keys only.
	TierAdmin
)

func (t Tier) String() string {
	switch t {
	case TierStandard:
		return "standard"
	case TierAdmin:
		return "admin"
	default:
		return "public"
	}
}

// Keys is the immutable credential store. An empty key set fails closed: no
// request of that tier can ever authenticate.
type Keys struct {
	standard [][]byte
	admin    [][]byte
}

// NewKeys builds a credential store from the configured standard and admin
// key sets. Empty strings are dropped.
func NewKeys(standard, admin []string) *Keys {
	k := &Keys{}
	for _, s := range standard {
		if s != "" {
			k.standard = append(k.standard, []byte(s))
		}
	}
	for _, s := range admin {
		if s != "" {
			k.admin = append(k.admin, []byte(s))
		}
	}
	return k
}

// Valid reports whether token authenticates at the given tier. Admin keys
// are a superset privilege: they authenticate at the standard tier as well.
// Membership in the admin set is checked independently of the standard set.
// Comparison shape is constant with respect to key contents to avoid timing
// leaks; every configured key is always compared.
func (k *Keys) Valid(token string, tier Tier) bool {
	if tier == TierPublic {
		return true
	}
	tb := []byte(token)
	match := 0
	if tier == TierStandard {
		for _, key := range k.standard {
			match |= subtle.ConstantTimeCompare(tb, key)
		}
	}
	for _, key := range k.admin {
		match |= subtle.ConstantTimeCompare(tb, key)
	}
	return match == 1
}

// Known reports whether token matches any configured key at all, regardless
// of tier. Used to distinguish 401 (unknown credential) from 403 (known
// credential, insufficient tier).
func (k *Keys) Known(token string) bool {
	return k.Valid(token, TierStandard)
}
