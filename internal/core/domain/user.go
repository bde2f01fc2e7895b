package domain

import "time"

// Identity is the authenticated actor held in memory for the lifetime of a
// session. It is never persisted; it exists from a successful sign-in until
// sign-out or idle-timeout expiry.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Credential is the persisted email/password/role tuple used for sign-in.
// Passwords are stored and compared as plaintext so that the seeded demo
// accounts keep authenticating verbatim; sign-in is an exact, case-sensitive
// string match.
type Credential struct {
	ID       string `json:"id" bson:"_id"`
	Email    string `json:"email" bson:"email"`
	Password string `json:"-" bson:"password"`
	Role     Role   `json:"role" bson:"role"`
}

// AppUser is the administrable user profile shown in the back office. It is
// kept in tandem with a Credential: creating or deleting a user touches both
// records.
type AppUser struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Role      Role      `json:"role" bson:"role"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
