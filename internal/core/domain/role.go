package domain

// Role classifies an authenticated actor. The three roles map to the three
// profiles the back office knows about: administrators own user and
// configuration management, managers run campaigns, agents work the phones.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleAgent   Role = "agent"
)

// ParseRole maps a raw storage value onto a known role. Role values loaded
// from the store are untrusted; anything unrecognised degrades to the least
// privileged role rather than being rejected.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleAgent:
		return Role(s)
	default:
		return RoleAgent
	}
}
