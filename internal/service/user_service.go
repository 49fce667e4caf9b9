package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/dto"
	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
	appErrors "github.com/KhobaitUddinSimran/Student-Management-System/pkg/errors"
)

type userRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
	ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error)
	LinkedStudents(ctx context.Context, parentID string) ([]models.User, error)
	LinkParent(ctx context.Context, parentID, studentID string) (int64, error)
	UnlinkParent(ctx context.Context, studentID string) (int64, error)
	UnlinkedStudents(ctx context.Context) ([]models.User, error)
}

// UserService creates and manages accounts of every role through a single
// factory entry point.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs a UserService instance.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, validator: validate, logger: logger}
}

// CreateUser builds an account for the requested role. STUDENT accounts may
// carry a parent link, which must reference an existing PARENT account.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	role := models.UserRole(req.Role)
	if !role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrInvalidRole, "unknown role: "+req.Role)
	}

	if req.ParentID != nil && role != models.RoleStudent {
		return nil, appErrors.Clone(appErrors.ErrValidation, "only students can carry a parent link")
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email is already registered")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
	}

	if role == models.RoleStudent && req.ParentID != nil {
		parent, err := s.repo.FindByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "parent account not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load parent")
		}
		if parent.Role != models.RoleParent {
			return nil, appErrors.Clone(appErrors.ErrValidation, "parentId must reference a PARENT account")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if role == models.RoleStudent {
		user.ParentID = req.ParentID
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	s.logger.Info("user created", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// GetUser loads one account.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	return user, nil
}

// ListUsers applies the query filters and returns a page plus pagination data.
func (s *UserService) ListUsers(ctx context.Context, query dto.ListUsersQuery) ([]models.User, *models.Pagination, error) {
	filter := models.UserFilter{
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if query.Role != "" {
		role := models.UserRole(query.Role)
		if !role.Valid() {
			return nil, nil, appErrors.Clone(appErrors.ErrInvalidRole, "unknown role: "+query.Role)
		}
		filter.Role = &role
	}

	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	return users, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// ListByRole returns every account holding one role.
func (s *UserService) ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	if !role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrInvalidRole, "unknown role: "+string(role))
	}
	users, err := s.repo.ListByRole(ctx, role)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	return users, nil
}

// LinkParent binds a parent account to a student account.
func (s *UserService) LinkParent(ctx context.Context, req dto.LinkParentRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid link payload")
	}

	parent, err := s.repo.FindByID(ctx, req.ParentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "parent account not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load parent")
	}
	if parent.Role != models.RoleParent {
		return appErrors.Clone(appErrors.ErrValidation, "parentId must reference a PARENT account")
	}

	affected, err := s.repo.LinkParent(ctx, req.ParentID, req.StudentID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to link parent")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "student account not found")
	}

	s.logger.Info("parent linked", zap.String("parent_id", req.ParentID), zap.String("student_id", req.StudentID))
	return nil
}

// UnlinkParent clears a student's parent link.
func (s *UserService) UnlinkParent(ctx context.Context, studentID string) error {
	affected, err := s.repo.UnlinkParent(ctx, studentID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to unlink parent")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "student account not found")
	}
	return nil
}

// LinkedStudents lists the students bound to a parent.
func (s *UserService) LinkedStudents(ctx context.Context, parentID string) ([]models.User, error) {
	students, err := s.repo.LinkedStudents(ctx, parentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list linked students")
	}
	return students, nil
}

// UnlinkedStudents lists students without a parent link.
func (s *UserService) UnlinkedStudents(ctx context.Context) ([]models.User, error) {
	students, err := s.repo.UnlinkedStudents(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list unlinked students")
	}
	return students, nil
}
