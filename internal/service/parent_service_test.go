package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
	appErrors "github.com/KhobaitUddinSimran/Student-Management-System/pkg/errors"
)

type mockParentLinks struct {
	links    map[string]bool
	children []models.User
}

func linkKey(parentID, studentID string) string { return parentID + "/" + studentID }

func (m *mockParentLinks) IsParentLinked(ctx context.Context, parentID, studentID string) (bool, error) {
	return m.links[linkKey(parentID, studentID)], nil
}

func (m *mockParentLinks) LinkedStudents(ctx context.Context, parentID string) ([]models.User, error) {
	return m.children, nil
}

func newParentService(links *mockParentLinks, grades *mockGradeRepo, attendance *mockAttendanceRepo) *ParentService {
	gradeSvc := NewGradeService(grades, &mockGradeUsers{}, nil, validator.New(), zap.NewNop())
	attendanceSvc := NewAttendanceService(attendance, &feedRecorder{}, nil, validator.New(), zap.NewNop(), 7)
	return NewParentService(links, gradeSvc, attendanceSvc, zap.NewNop())
}

func TestVerifyAccessDeniesUnlinkedPair(t *testing.T) {
	links := &mockParentLinks{links: map[string]bool{}}
	svc := newParentService(links, &mockGradeRepo{}, &mockAttendanceRepo{})

	err := svc.VerifyAccess(context.Background(), "parent-1", "student-9")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrAccessDenied.Code, appErr.Code)
	assert.Equal(t, "access denied: you are not linked to this student", appErr.Message)
}

func TestChildGradesRequireLink(t *testing.T) {
	links := &mockParentLinks{links: map[string]bool{linkKey("parent-1", "student-1"): true}}
	grades := &mockGradeRepo{grades: []models.Grade{{Subject: "Math", Score: 90}}}
	svc := newParentService(links, grades, &mockAttendanceRepo{})

	result, err := svc.ChildGrades(context.Background(), "parent-1", "student-1")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "A-", result[0].LetterGrade)

	_, err = svc.ChildGrades(context.Background(), "parent-2", "student-1")
	require.Error(t, err)
}

func TestChildOverviewComposesGPAAndAttendance(t *testing.T) {
	links := &mockParentLinks{links: map[string]bool{linkKey("parent-1", "student-1"): true}}
	grades := &mockGradeRepo{grades: []models.Grade{
		{Subject: "Math", Score: 80},
		{Subject: "Math", Score: 90},
		{Subject: "Science", Score: 100},
	}}
	attendance := &mockAttendanceRepo{stats: &models.AttendanceStats{TotalDays: 4, PresentDays: 3}}
	svc := newParentService(links, grades, attendance)

	overview, err := svc.ChildOverview(context.Background(), "parent-1", "student-1")
	require.NoError(t, err)
	assert.Equal(t, "student-1", overview.StudentID)
	assert.Equal(t, 3.5, overview.WeightedGPA.GPA)
	assert.Equal(t, "A-", overview.WeightedGPA.LetterGrade)
	assert.Equal(t, "75.00", overview.Attendance.AttendancePercentage)
	assert.Len(t, overview.RecentGrades, 3)
}
