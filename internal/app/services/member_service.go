package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/cfcpretoriaeast/churchhub/internal/app/models"
	"github.com/cfcpretoriaeast/churchhub/internal/app/models/dto"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/apperrors"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/helpers"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	pinMin   = 1000
	pinRange = 9000
)

// GeneratePIN returns a random four digit PIN between 1000 and 9999
func GeneratePIN() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(pinRange))
	if err != nil {
		return "", fmt.Errorf("error generating PIN: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()+pinMin), nil
}

// MemberService handles member profiles, roles and PINs
type MemberService struct {
	users  UserStore
	newPIN func() (string, error)
	log    zerolog.Logger
}

// NewMemberService creates a new member service
func NewMemberService(users UserStore, log zerolog.Logger) *MemberService {
	return &MemberService{
		users:  users,
		newPIN: GeneratePIN,
		log:    log,
	}
}

// validateProfile checks the fields shared by create and update
func validateProfile(email, name, surname string, phone *string) error {
	if !validation.IsValidName(name) {
		return apperrors.NewValidationError("name is required and must be at most 100 characters")
	}
	if !validation.IsValidName(surname) {
		return apperrors.NewValidationError("surname is required and must be at most 100 characters")
	}
	if !validation.IsValidEmail(email) {
		return apperrors.NewValidationError("email format is invalid")
	}
	if !validation.IsValidPhone(phone) {
		return apperrors.NewValidationError("phone number format is invalid")
	}
	return nil
}

// MatchesMemberSearch extends the roster search with the member's email
func MatchesMemberSearch(u *models.User, search string) bool {
	return MatchesSearch(u, search) || helpers.ContainsFold(u.Email, search)
}

// List returns one page of members, newest first
func (s *MemberService) List(ctx context.Context, params dto.MemberListParams) (*dto.MemberListResponse, error) {
	if params.Role != nil && !params.Role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}

	users, err := s.users.List(ctx, models.UserFilter{Role: params.Role})
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list members")
		return nil, fmt.Errorf("error listing members: %w", err)
	}

	search := strings.TrimSpace(params.Search)
	matched := make([]*models.User, 0, len(users))
	for _, u := range users {
		if search == "" || MatchesMemberSearch(u, search) {
			matched = append(matched, u)
		}
	}

	start, end := helpers.CalculateSliceIndices(params.Page, params.Size, len(matched))
	return &dto.MemberListResponse{
		Members:    matched[start:end],
		Pagination: helpers.NewPaginationInfo(int64(len(matched)), params.Page, params.Size),
	}, nil
}

// Get retrieves a member by ID
func (s *MemberService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// Create adds a member; every role except member is issued a PIN
func (s *MemberService) Create(ctx context.Context, req dto.CreateMemberRequest) (*models.User, error) {
	if err := validateProfile(req.Email, req.Name, req.Surname, req.Phone); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleMember
	}
	if !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}

	u := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         strings.TrimSpace(req.Name),
		Surname:      strings.TrimSpace(req.Surname),
		Phone:        helpers.NullIfBlank(req.Phone),
		Role:         role,
		DepartmentID: req.DepartmentID,
		CellGroup:    helpers.NullIfBlank(req.CellGroup),
		IsFirstTimer: req.IsFirstTimer,
	}
	if role.RequiresPIN() {
		pin, err := s.newPIN()
		if err != nil {
			return nil, err
		}
		u.PIN = &pin
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info().Str("userId", u.ID.String()).Str("role", string(u.Role)).Msg("Member created")
	return u, nil
}

// Update changes a member's profile; role and PIN have their own operations
func (s *MemberService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateMemberRequest) (*models.User, error) {
	if err := validateProfile(req.Email, req.Name, req.Surname, req.Phone); err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.Email = strings.ToLower(strings.TrimSpace(req.Email))
	u.Name = strings.TrimSpace(req.Name)
	u.Surname = strings.TrimSpace(req.Surname)
	u.Phone = helpers.NullIfBlank(req.Phone)
	u.DepartmentID = req.DepartmentID
	u.CellGroup = helpers.NullIfBlank(req.CellGroup)
	u.IsFirstTimer = req.IsFirstTimer

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes a member
func (s *MemberService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}

// RegeneratePIN issues a fresh PIN to a member whose role carries one
func (s *MemberService) RegeneratePIN(ctx context.Context, id uuid.UUID) (*dto.PINResponse, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.Role.RequiresPIN() {
		return nil, apperrors.NewBadRequestError("members with the member role do not have a PIN")
	}

	pin, err := s.newPIN()
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdatePIN(ctx, id, &pin); err != nil {
		return nil, err
	}
	return &dto.PINResponse{MemberID: id, PIN: pin}, nil
}

// ChangeRole moves a member to another role, issuing or revoking the PIN to match
func (s *MemberService) ChangeRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pin := u.PIN
	switch {
	case !role.RequiresPIN():
		pin = nil
	case pin == nil || !validation.IsValidPIN(*pin):
		generated, err := s.newPIN()
		if err != nil {
			return nil, err
		}
		pin = &generated
	}

	if err := s.users.UpdateRole(ctx, id, role, pin); err != nil {
		return nil, err
	}
	u.Role = role
	u.PIN = pin
	s.log.Info().Str("userId", id.String()).Str("role", string(role)).Msg("Member role changed")
	return u, nil
}

// RolePermissions lists every role with its permissions and how many members hold it
func (s *MemberService) RolePermissions(ctx context.Context) ([]dto.RoleSummary, error) {
	counts, err := s.users.CountByRole(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to count members by role")
		return nil, fmt.Errorf("error counting roles: %w", err)
	}

	summaries := make([]dto.RoleSummary, 0, len(models.Roles))
	for _, r := range models.Roles {
		summaries = append(summaries, dto.RoleSummary{
			Role:        r,
			Permissions: r.Permissions(),
			UserCount:   counts[r],
		})
	}
	return summaries, nil
}
