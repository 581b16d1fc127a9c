package entity

import "github.com/google/uuid"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	Record
	Name         string      `db:"name"`
	Email        string      `db:"email"`
	PasswordHash string      `db:"password"`
	Role         UserRole    `db:"role"`
	BookingIDs   []uuid.UUID `db:"booking_ids"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
