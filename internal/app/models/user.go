package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a church member based on the 'users' table
type User struct {
	ID           uuid.UUID  `json:"id" db:"id" example:"6f1c2a9e-8d0b-4c44-9a51-1f5f0c3b7d21"`
	Email        string     `json:"email" db:"email" example:"ushers.lead@cfcpretoriaeast.org"`
	Name         string     `json:"name" db:"name" example:"Zanele"`
	Surname      string     `json:"surname" db:"surname" example:"Khumalo"`
	Phone        *string    `json:"phone,omitempty" db:"phone" example:"+27123456792"`
	Role         Role       `json:"role" db:"role" example:"department_leader"`
	PIN          *string    `json:"pin,omitempty" db:"pin" example:"2002"`
	DepartmentID *uuid.UUID `json:"departmentId,omitempty" db:"department_id"`
	CellGroup    *string    `json:"cellGroup,omitempty" db:"cell_group" example:"Women Fellowship"`
	IsFirstTimer bool       `json:"isFirstTimer" db:"is_first_timer"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
}

// FullName joins name and surname for display
func (u *User) FullName() string {
	return u.Name + " " + u.Surname
}

// UserFilter narrows a member listing
type UserFilter struct {
	Role         *Role
	DepartmentID *uuid.UUID
	FirstTimers  bool
	// OrderBySurname sorts alphabetically instead of newest first
	OrderBySurname bool
}
