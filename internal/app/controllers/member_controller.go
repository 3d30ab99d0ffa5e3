package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/cfcpretoriaeast/churchhub/internal/app/models"
	"github.com/cfcpretoriaeast/churchhub/internal/app/models/dto"
	"github.com/cfcpretoriaeast/churchhub/internal/middleware"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/helpers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MemberService is what the member endpoints need from the service layer
type MemberService interface {
	List(ctx context.Context, params dto.MemberListParams) (*dto.MemberListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, req dto.CreateMemberRequest) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateMemberRequest) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RegeneratePIN(ctx context.Context, id uuid.UUID) (*dto.PINResponse, error)
	ChangeRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.User, error)
	RolePermissions(ctx context.Context) ([]dto.RoleSummary, error)
}

// MemberController handles member, role and PIN endpoints
type MemberController struct {
	memberService MemberService
}

// NewMemberController creates a new MemberController
func NewMemberController(memberService MemberService) *MemberController {
	return &MemberController{memberService: memberService}
}

// ListMembers returns a page of members
// @Summary List members
// @Description Lists members newest first, optionally filtered by role and a search over name, surname, email, phone and cell group
// @Tags members
// @Produce json
// @Param search query string false "Case-insensitive search text"
// @Param role query string false "Role filter" Enums(admin, department_leader, event_leader, member, view_only)
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(50)
// @Success 200 {object} dto.APIResponse{data=dto.MemberListResponse} "Members retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid role"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /members [get]
func (c *MemberController) ListMembers(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	params := dto.MemberListParams{
		Search: ctx.Query("search"),
		Page:   page,
		Size:   size,
	}
	if r := strings.TrimSpace(ctx.Query("role")); r != "" {
		role := models.Role(r)
		params.Role = &role
	}

	res, err := c.memberService.List(ctx, params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      res,
		Timestamp: time.Now(),
	})
}

// GetMember retrieves a member by ID
// @Summary Get member by ID
// @Tags members
// @Produce json
// @Param id path string true "Member ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=models.User} "Member retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid member ID"
// @Failure 404 {object} dto.ErrorResponse "Member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /members/{id} [get]
func (c *MemberController) GetMember(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id", "member")
	if !ok {
		return
	}

	member, err := c.memberService.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      member,
		Timestamp: time.Now(),
	})
}

// CreateMember handles member creation
// @Summary Create a member
// @Description Creates a member. Every role except member is issued a four digit PIN.
// @Tags members
// @Accept json
// @Produce json
// @Param request body dto.CreateMemberRequest true "Member information"
// @Success 201 {object} dto.APIResponse{data=models.User} "Member created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /members [post]
func (c *MemberController) CreateMember(ctx *gin.Context) {
	var req dto.CreateMemberRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	member, err := c.memberService.Create(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      member,
		Timestamp: time.Now(),
	})
}

// UpdateMember updates a member's profile
// @Summary Update a member
// @Tags members
// @Accept json
// @Produce json
// @Param id path string true "Member ID" Format(uuid)
// @Param request body dto.UpdateMemberRequest true "Updated profile"
// @Success 200 {object} dto.APIResponse{data=models.User} "Member updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Member not found"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /members/{id} [put]
func (c *MemberController) UpdateMember(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id", "member")
	if !ok {
		return
	}
	var req dto.UpdateMemberRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	member, err := c.memberService.Update(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      member,
		Timestamp: time.Now(),
	})
}

// DeleteMember deletes a member
// @Summary Delete a member
// @Description Deletes a member together with their attendance and call history
// @Tags members
// @Param id path string true "Member ID" Format(uuid)
// @Success 204 "Member deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid member ID"
// @Failure 404 {object} dto.ErrorResponse "Member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /members/{id} [delete]
func (c *MemberController) DeleteMember(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id", "member")
	if !ok {
		return
	}

	if err := c.memberService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// RegeneratePIN issues a new PIN
// @Summary Regenerate a member's PIN
// @Tags members
// @Produce json
// @Param id path string true "Member ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.PINResponse} "PIN regenerated"
// @Failure 400 {object} dto.ErrorResponse "Member role has no PIN"
// @Failure 404 {object} dto.ErrorResponse "Member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /members/{id}/pin [post]
func (c *MemberController) RegeneratePIN(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id", "member")
	if !ok {
		return
	}

	res, err := c.memberService.RegeneratePIN(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      res,
		Timestamp: time.Now(),
	})
}

// ChangeRole moves a member to another role
// @Summary Change a member's role
// @Description Changing to member revokes the PIN; changing to any other role issues one if missing
// @Tags members
// @Accept json
// @Produce json
// @Param id path string true "Member ID" Format(uuid)
// @Param request body dto.ChangeRoleRequest true "New role"
// @Success 200 {object} dto.APIResponse{data=models.User} "Role changed"
// @Failure 400 {object} dto.ErrorResponse "Invalid role"
// @Failure 404 {object} dto.ErrorResponse "Member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /members/{id}/role [put]
func (c *MemberController) ChangeRole(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id", "member")
	if !ok {
		return
	}
	var req dto.ChangeRoleRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	member, err := c.memberService.ChangeRole(ctx, id, req.Role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      member,
		Timestamp: time.Now(),
	})
}

// ListRoles lists roles with their permissions
// @Summary List roles
// @Description Lists every role with its descriptive permission list and member count
// @Tags roles
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.RoleSummary} "Roles retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /roles [get]
func (c *MemberController) ListRoles(ctx *gin.Context) {
	roles, err := c.memberService.RolePermissions(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      roles,
		Timestamp: time.Now(),
	})
}
