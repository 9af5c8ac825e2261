package domain

import (
	"regexp"

	"github.com/google/uuid"
)

// Role represents the kind of account behind a credential.
type Role string

const (
	// RoleNGO may create campaigns.
	RoleNGO Role = "ngo"
	// RoleDonor may record donations.
	RoleDonor Role = "donor"
)

// Valid reports whether the role is one the platform knows.
func (r Role) Valid() bool {
	return r == RoleNGO || r == RoleDonor
}

var walletAddressRe = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// ValidWalletAddress reports whether s is a 0x-prefixed 20-byte hex address.
func ValidWalletAddress(s string) bool {
	return walletAddressRe.MatchString(s)
}

// Identity is the decoded content of a bearer credential. The platform does
// not issue credentials itself; it only validates them and extracts this.
type Identity struct {
	UserID uuid.UUID
	Role   Role
	Wallet string
}
