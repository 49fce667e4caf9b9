package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/dto"
	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
	appErrors "github.com/KhobaitUddinSimran/Student-Management-System/pkg/errors"
)

type classRepository interface {
	Create(ctx context.Context, class *models.Class) error
	List(ctx context.Context) ([]models.Class, error)
	FindByID(ctx context.Context, id string) (*models.Class, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]models.Class, error)
	Enroll(ctx context.Context, studentID, classID string) error
	RemoveStudent(ctx context.Context, classID, studentID string) (int64, error)
	StudentsByClass(ctx context.Context, classID string) ([]models.ClassStudent, error)
	CreateSubject(ctx context.Context, subject *models.Subject) error
	ListSubjects(ctx context.Context) ([]models.Subject, error)
	AssignSubject(ctx context.Context, assignment *models.ClassSubject) error
	SubjectsByClass(ctx context.Context, classID string) ([]models.ClassSubject, error)
}

type classUserRepo interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// ClassService manages classes, subjects, rosters and teaching assignments.
type ClassService struct {
	repo      classRepository
	users     classUserRepo
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs a ClassService instance.
func NewClassService(repo classRepository, users classUserRepo, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ClassService{repo: repo, users: users, validator: validate, logger: logger}
}

// CreateClass creates a class. The homeroom teacher, when given, must hold
// the TEACHER role.
func (s *ClassService) CreateClass(ctx context.Context, req dto.CreateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}

	if req.HomeroomTeacherID != nil {
		if err := s.requireRole(ctx, *req.HomeroomTeacherID, models.RoleTeacher, "homeroom teacher"); err != nil {
			return nil, err
		}
	}

	class := &models.Class{
		Name:              req.Name,
		GradeLevel:        req.GradeLevel,
		HomeroomTeacherID: req.HomeroomTeacherID,
	}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class")
	}
	return class, nil
}

// ListClasses returns every class.
func (s *ClassService) ListClasses(ctx context.Context) ([]models.Class, error) {
	classes, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	return classes, nil
}

// GetClass loads one class.
func (s *ClassService) GetClass(ctx context.Context, id string) (*models.Class, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	return class, nil
}

// EnrollStudent adds a student to a class roster.
func (s *ClassService) EnrollStudent(ctx context.Context, classID string, req dto.EnrollStudentRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	if _, err := s.GetClass(ctx, classID); err != nil {
		return err
	}
	if err := s.requireRole(ctx, req.StudentID, models.RoleStudent, "student"); err != nil {
		return err
	}
	if err := s.repo.Enroll(ctx, req.StudentID, classID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enroll student")
	}
	return nil
}

// RemoveStudent drops a student from a class roster.
func (s *ClassService) RemoveStudent(ctx context.Context, classID, studentID string) error {
	affected, err := s.repo.RemoveStudent(ctx, classID, studentID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove student")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}
	return nil
}

// ClassRoster returns the students of a class.
func (s *ClassService) ClassRoster(ctx context.Context, classID string) ([]models.ClassStudent, error) {
	if _, err := s.GetClass(ctx, classID); err != nil {
		return nil, err
	}
	students, err := s.repo.StudentsByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	return students, nil
}

// CreateSubject creates a subject.
func (s *ClassService) CreateSubject(ctx context.Context, req dto.CreateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	subject := &models.Subject{Name: req.Name}
	if err := s.repo.CreateSubject(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}
	return subject, nil
}

// ListSubjects returns every subject.
func (s *ClassService) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	subjects, err := s.repo.ListSubjects(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	return subjects, nil
}

// AssignSubject binds a subject and teacher to a class.
func (s *ClassService) AssignSubject(ctx context.Context, classID string, req dto.AssignSubjectRequest) (*models.ClassSubject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	if _, err := s.GetClass(ctx, classID); err != nil {
		return nil, err
	}
	if err := s.requireRole(ctx, req.TeacherID, models.RoleTeacher, "teacher"); err != nil {
		return nil, err
	}

	assignment := &models.ClassSubject{
		ClassID:   classID,
		SubjectID: req.SubjectID,
		TeacherID: req.TeacherID,
	}
	if err := s.repo.AssignSubject(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to assign subject")
	}
	return assignment, nil
}

// ClassSubjects returns the subject assignments of a class.
func (s *ClassService) ClassSubjects(ctx context.Context, classID string) ([]models.ClassSubject, error) {
	assignments, err := s.repo.SubjectsByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class subjects")
	}
	return assignments, nil
}

func (s *ClassService) requireRole(ctx context.Context, userID string, role models.UserRole, label string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, label+" not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load "+label)
	}
	if user.Role != role {
		return appErrors.Clone(appErrors.ErrValidation, label+" must hold the "+string(role)+" role")
	}
	return nil
}
