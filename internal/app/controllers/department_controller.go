package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/cfcpretoriaeast/churchhub/internal/app/models"
	"github.com/cfcpretoriaeast/churchhub/internal/app/models/dto"
	"github.com/cfcpretoriaeast/churchhub/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DepartmentService is what the department, team and checklist endpoints need
type DepartmentService interface {
	GetAll(ctx context.Context) ([]*models.Department, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Department, error)
	Create(ctx context.Context, req dto.DepartmentRequest) (*models.Department, error)
	Update(ctx context.Context, id uuid.UUID, req dto.DepartmentRequest) (*models.Department, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Members(ctx context.Context, id uuid.UUID) ([]*models.User, error)
	Teams(ctx context.Context, id uuid.UUID) ([]*models.Team, error)
	CreateTeam(ctx context.Context, departmentID uuid.UUID, req dto.CreateTeamRequest) (*models.Team, error)
	DeleteTeam(ctx context.Context, id uuid.UUID) error
	Checklist(ctx context.Context, teamID, eventID uuid.UUID) (*dto.ChecklistResponse, error)
	UpdateChecklist(ctx context.Context, teamID, eventID uuid.UUID, req dto.UpdateChecklistRequest) (*dto.ChecklistResponse, error)
}

// DepartmentController handles department-related operations
type DepartmentController struct {
	departmentService DepartmentService
}

// NewDepartmentController creates a new DepartmentController
func NewDepartmentController(departmentService DepartmentService) *DepartmentController {
	return &DepartmentController{
		departmentService: departmentService,
	}
}

// CreateDepartment handles department creation
// @Summary Create a new department
// @Description Creates a new department with the provided information
// @Tags departments
// @Accept json
// @Produce json
// @Param request body dto.DepartmentRequest true "Department information"
// @Success 201 {object} dto.APIResponse{data=models.Department} "Department created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Department already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments [post]
func (c *DepartmentController) CreateDepartment(ctx *gin.Context) {
	var req dto.DepartmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	department, err := c.departmentService.Create(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      department,
		Timestamp: time.Now(),
	})
}

// GetDepartmentByID retrieves a department by ID
// @Summary Get department by ID
// @Description Retrieves a department with its teams and member count
// @Tags departments
// @Produce json
// @Param id path string true "Department ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=models.Department} "Department retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid department ID"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{id} [get]
func (c *DepartmentController) GetDepartmentByID(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id", "department")
	if !ok {
		return
	}

	department, err := c.departmentService.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      department,
		Timestamp: time.Now(),
	})
}

// GetAllDepartments retrieves all departments
// @Summary Get all departments
// @Description Retrieves a list of all departments with member counts
// @Tags departments
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Department} "Departments retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments [get]
func (c *DepartmentController) GetAllDepartments(ctx *gin.Context) {
	departments, err := c.departmentService.GetAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      departments,
		Timestamp: time.Now(),
	})
}

// UpdateDepartment updates an existing department
// @Summary Update a department
// @Tags departments
// @Accept json
// @Produce json
// @Param id path string true "Department ID" Format(uuid)
// @Param request body dto.DepartmentRequest true "Updated department information"
// @Success 200 {object} dto.APIResponse{data=models.Department} "Department updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 409 {object} dto.ErrorResponse "Department already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{id} [put]
func (c *DepartmentController) UpdateDepartment(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id", "department")
	if !ok {
		return
	}
	var req dto.DepartmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	department, err := c.departmentService.Update(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      department,
		Timestamp: time.Now(),
	})
}

// DeleteDepartment deletes a department
// @Summary Delete a department
// @Description Deletes a department that has no teams or members left
// @Tags departments
// @Param id path string true "Department ID" Format(uuid)
// @Success 204 "Department deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid department ID"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 409 {object} dto.ErrorResponse "Department still has teams or members"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{id} [delete]
func (c *DepartmentController) DeleteDepartment(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id", "department")
	if !ok {
		return
	}

	if err := c.departmentService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetDepartmentMembers lists a department's members
// @Summary List department members
// @Tags departments
// @Produce json
// @Param id path string true "Department ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=[]models.User} "Members retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid department ID"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{id}/members [get]
func (c *DepartmentController) GetDepartmentMembers(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id", "department")
	if !ok {
		return
	}

	members, err := c.departmentService.Members(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      members,
		Timestamp: time.Now(),
	})
}

// GetTeams lists a department's teams
// @Summary List department teams
// @Tags teams
// @Produce json
// @Param id path string true "Department ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=[]models.Team} "Teams retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid department ID"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{id}/teams [get]
func (c *DepartmentController) GetTeams(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id", "department")
	if !ok {
		return
	}

	teams, err := c.departmentService.Teams(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      teams,
		Timestamp: time.Now(),
	})
}

// CreateTeam adds a team to a department
// @Summary Create a team
// @Tags teams
// @Accept json
// @Produce json
// @Param id path string true "Department ID" Format(uuid)
// @Param request body dto.CreateTeamRequest true "Team information"
// @Success 201 {object} dto.APIResponse{data=models.Team} "Team created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Department or leader not found"
// @Failure 409 {object} dto.ErrorResponse "Team already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{id}/teams [post]
func (c *DepartmentController) CreateTeam(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id", "department")
	if !ok {
		return
	}
	var req dto.CreateTeamRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	team, err := c.departmentService.CreateTeam(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      team,
		Timestamp: time.Now(),
	})
}

// DeleteTeam removes a team
// @Summary Delete a team
// @Tags teams
// @Param teamId path string true "Team ID" Format(uuid)
// @Success 204 "Team deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid team ID"
// @Failure 404 {object} dto.ErrorResponse "Team not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teams/{teamId} [delete]
func (c *DepartmentController) DeleteTeam(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "teamId", "team")
	if !ok {
		return
	}

	if err := c.departmentService.DeleteTeam(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *DepartmentController) teamAndEvent(ctx *gin.Context) (teamID, eventID uuid.UUID, ok bool) {
	if teamID, ok = parseUUIDParam(ctx, "teamId", "team"); !ok {
		return
	}
	eventID, ok = parseUUIDParam(ctx, "eventId", "event")
	return
}

// GetChecklist returns a team's equipment checklist for an event
// @Summary Get equipment checklist
// @Tags checklists
// @Produce json
// @Param teamId path string true "Team ID" Format(uuid)
// @Param eventId path string true "Event ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.ChecklistResponse} "Checklist retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Team or event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teams/{teamId}/checklists/{eventId} [get]
func (c *DepartmentController) GetChecklist(ctx *gin.Context) {
	teamID, eventID, ok := c.teamAndEvent(ctx)
	if !ok {
		return
	}

	checklist, err := c.departmentService.Checklist(ctx, teamID, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      checklist,
		Timestamp: time.Now(),
	})
}

// UpdateChecklist upserts checklist items by equipment name
// @Summary Update equipment checklist
// @Description Inserts or updates items keyed by equipment name and returns the whole checklist
// @Tags checklists
// @Accept json
// @Produce json
// @Param teamId path string true "Team ID" Format(uuid)
// @Param eventId path string true "Event ID" Format(uuid)
// @Param request body dto.UpdateChecklistRequest true "Checklist items"
// @Success 200 {object} dto.APIResponse{data=dto.ChecklistResponse} "Checklist saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Team or event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teams/{teamId}/checklists/{eventId} [put]
func (c *DepartmentController) UpdateChecklist(ctx *gin.Context) {
	teamID, eventID, ok := c.teamAndEvent(ctx)
	if !ok {
		return
	}
	var req dto.UpdateChecklistRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	checklist, err := c.departmentService.UpdateChecklist(ctx, teamID, eventID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      checklist,
		Timestamp: time.Now(),
	})
}
