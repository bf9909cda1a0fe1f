package domain

import "time"

// AccessType is the authorization axis for an account.
type AccessType string

const (
	AccessTypeRestricted AccessType = "RESTRICTED"
	AccessTypeStandard   AccessType = "STANDARD"
	AccessTypeAdmin      AccessType = "ADMIN"
)

// UserState represents lifecycle states for an account.
type UserState string

const (
	UserStatePending       UserState = "PENDING"
	UserStateActive        UserState = "ACTIVE"
	UserStateBlocked       UserState = "BLOCKED"
	UserStatePasswordReset UserState = "PASSWORD_RESET"
)

// User is an applicant or administrator account.
type User struct {
	ID             string     `validate:"required"`
	Email          string     `validate:"required,email"`
	PasswordHash   string     `validate:"required"`
	AccessType     AccessType `validate:"oneof=RESTRICTED STANDARD ADMIN"`
	State          UserState  `validate:"oneof=PENDING ACTIVE BLOCKED PASSWORD_RESET"`
	AccountCreated time.Time
	LastLogin      time.Time
}

func (u *User) IsAdmin() bool {
	return u.AccessType == AccessTypeAdmin
}

func (u *User) IsBlocked() bool {
	return u.State == UserStateBlocked
}

// Actor returns the request identity derived from the account.
func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Email: u.Email, AccessType: u.AccessType}
}
