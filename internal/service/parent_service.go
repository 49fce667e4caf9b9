package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
	appErrors "github.com/KhobaitUddinSimran/Student-Management-System/pkg/errors"
)

type parentLinkRepository interface {
	IsParentLinked(ctx context.Context, parentID, studentID string) (bool, error)
	LinkedStudents(ctx context.Context, parentID string) ([]models.User, error)
}

// ChildOverview is the parent portal view of one linked student.
type ChildOverview struct {
	StudentID    string                    `json:"studentId"`
	WeightedGPA  *models.WeightedGPAResult `json:"weightedGPA"`
	Attendance   *models.AttendanceStats   `json:"attendance"`
	RecentGrades []models.Grade            `json:"recentGrades"`
}

// ParentService gates student data behind the parent-student link. Every
// read verifies the link first; an unlinked pair is denied, never empty.
type ParentService struct {
	links      parentLinkRepository
	grades     *GradeService
	attendance *AttendanceService
	logger     *zap.Logger
}

// NewParentService constructs a ParentService instance.
func NewParentService(links parentLinkRepository, grades *GradeService, attendance *AttendanceService, logger *zap.Logger) *ParentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParentService{links: links, grades: grades, attendance: attendance, logger: logger}
}

// VerifyAccess confirms the parent is linked to the student.
func (s *ParentService) VerifyAccess(ctx context.Context, parentID, studentID string) error {
	linked, err := s.links.IsParentLinked(ctx, parentID, studentID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check parent link")
	}
	if !linked {
		return appErrors.Clone(appErrors.ErrAccessDenied, "access denied: you are not linked to this student")
	}
	return nil
}

// Children lists the students linked to the parent.
func (s *ParentService) Children(ctx context.Context, parentID string) ([]models.User, error) {
	children, err := s.links.LinkedStudents(ctx, parentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list children")
	}
	return children, nil
}

// ChildGrades returns a linked student's grades.
func (s *ParentService) ChildGrades(ctx context.Context, parentID, studentID string) ([]models.Grade, error) {
	if err := s.VerifyAccess(ctx, parentID, studentID); err != nil {
		return nil, err
	}
	return s.grades.ListGrades(ctx, studentID)
}

// ChildAttendance returns a linked student's attendance history.
func (s *ParentService) ChildAttendance(ctx context.Context, parentID, studentID string) ([]models.Attendance, error) {
	if err := s.VerifyAccess(ctx, parentID, studentID); err != nil {
		return nil, err
	}
	return s.attendance.ListByStudent(ctx, studentID)
}

// ChildOverview composes GPA, attendance stats and recent grades for one
// linked student.
func (s *ParentService) ChildOverview(ctx context.Context, parentID, studentID string) (*ChildOverview, error) {
	if err := s.VerifyAccess(ctx, parentID, studentID); err != nil {
		return nil, err
	}

	summary, err := s.grades.AcademicSummary(ctx, studentID)
	if err != nil {
		return nil, err
	}

	stats, err := s.attendance.StudentStats(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return &ChildOverview{
		StudentID:    studentID,
		WeightedGPA:  &summary.WeightedGPA,
		Attendance:   stats,
		RecentGrades: summary.RecentGrades,
	}, nil
}
