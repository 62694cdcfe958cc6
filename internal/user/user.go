package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

// User is the slice of the account record the payments flows need: identity,
// role, and the membership link maintained by upgrade activations.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	Phone        string
	Role         string
	MembershipID *uuid.UUID
	CreatedAt    time.Time
}
