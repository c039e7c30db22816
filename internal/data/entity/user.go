package entity

import (
	"fmt"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleClient    UserRole = "client"
	RolePro       UserRole = "pro"
	RoleFranchise UserRole = "franchise"
	RoleAdmin     UserRole = "admin"
)

func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case RoleClient, RolePro, RoleFranchise, RoleAdmin:
		return UserRole(s), nil
	default:
		return "", fmt.Errorf("unknown role: %s", s)
	}
}

type User struct {
	Base
	Username     string     `db:"username"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password"`
	Phone        *string    `db:"phone"`
	Role         UserRole   `db:"role"`
	FranchiseID  *uuid.UUID `db:"franchise_id"`
	IsActive     bool       `db:"is_active"`
}
