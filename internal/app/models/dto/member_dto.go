package dto

import (
	"github.com/cfcpretoriaeast/churchhub/internal/app/models"
	"github.com/google/uuid"
)

// CreateMemberRequest represents member creation data
type CreateMemberRequest struct {
	Email        string      `json:"email" binding:"required,email" example:"thandi.nkosi@cfcpretoriaeast.org"`
	Name         string      `json:"name" binding:"required,max=100" example:"Thandi"`
	Surname      string      `json:"surname" binding:"required,max=100" example:"Nkosi"`
	Phone        *string     `json:"phone,omitempty" example:"+27821234567"`
	Role         models.Role `json:"role" binding:"omitempty,oneof=admin department_leader event_leader member view_only" example:"member"`
	DepartmentID *uuid.UUID  `json:"departmentId,omitempty"`
	CellGroup    *string     `json:"cellGroup,omitempty" example:"Young Adults"`
	IsFirstTimer bool        `json:"isFirstTimer"`
}

// UpdateMemberRequest represents member profile update data
type UpdateMemberRequest struct {
	Email        string     `json:"email" binding:"required,email"`
	Name         string     `json:"name" binding:"required,max=100"`
	Surname      string     `json:"surname" binding:"required,max=100"`
	Phone        *string    `json:"phone,omitempty"`
	DepartmentID *uuid.UUID `json:"departmentId,omitempty"`
	CellGroup    *string    `json:"cellGroup,omitempty"`
	IsFirstTimer bool       `json:"isFirstTimer"`
}

// ChangeRoleRequest moves a member to another role
type ChangeRoleRequest struct {
	Role models.Role `json:"role" binding:"required,oneof=admin department_leader event_leader member view_only" example:"event_leader"`
}

// MemberListParams are the query filters for the member list
type MemberListParams struct {
	Search string
	Role   *models.Role
	Page   int
	Size   int
}

// MemberListResponse is one page of members
type MemberListResponse struct {
	Members    []*models.User `json:"members"`
	Pagination PaginationInfo `json:"pagination"`
}

// PINResponse carries a freshly generated PIN
type PINResponse struct {
	MemberID uuid.UUID `json:"memberId"`
	PIN      string    `json:"pin" example:"4821"`
}

// RoleSummary describes one role with its permissions and head count
type RoleSummary struct {
	Role        models.Role `json:"role" example:"admin"`
	Permissions []string    `json:"permissions"`
	UserCount   int         `json:"userCount" example:"3"`
}
