package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/dto"
	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
	appErrors "github.com/KhobaitUddinSimran/Student-Management-System/pkg/errors"
)

type mockClassRepo struct {
	classes     map[string]*models.Class
	enrollments map[string][]string
	subjects    []models.Subject
	assignments []models.ClassSubject
	removed     int64
}

func newMockClassRepo() *mockClassRepo {
	return &mockClassRepo{
		classes:     make(map[string]*models.Class),
		enrollments: make(map[string][]string),
	}
}

func (m *mockClassRepo) Create(ctx context.Context, class *models.Class) error {
	if class.ID == "" {
		class.ID = "class-" + class.Name
	}
	m.classes[class.ID] = class
	return nil
}

func (m *mockClassRepo) List(ctx context.Context) ([]models.Class, error) {
	out := make([]models.Class, 0, len(m.classes))
	for _, c := range m.classes {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockClassRepo) FindByID(ctx context.Context, id string) (*models.Class, error) {
	class, ok := m.classes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return class, nil
}

func (m *mockClassRepo) ListByTeacher(ctx context.Context, teacherID string) ([]models.Class, error) {
	var out []models.Class
	for _, c := range m.classes {
		if c.HomeroomTeacherID != nil && *c.HomeroomTeacherID == teacherID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockClassRepo) Enroll(ctx context.Context, studentID, classID string) error {
	m.enrollments[classID] = append(m.enrollments[classID], studentID)
	return nil
}

func (m *mockClassRepo) RemoveStudent(ctx context.Context, classID, studentID string) (int64, error) {
	return m.removed, nil
}

func (m *mockClassRepo) StudentsByClass(ctx context.Context, classID string) ([]models.ClassStudent, error) {
	var out []models.ClassStudent
	for _, id := range m.enrollments[classID] {
		out = append(out, models.ClassStudent{ID: id})
	}
	return out, nil
}

func (m *mockClassRepo) CreateSubject(ctx context.Context, subject *models.Subject) error {
	if subject.ID == "" {
		subject.ID = "subject-" + subject.Name
	}
	m.subjects = append(m.subjects, *subject)
	return nil
}

func (m *mockClassRepo) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	return m.subjects, nil
}

func (m *mockClassRepo) AssignSubject(ctx context.Context, assignment *models.ClassSubject) error {
	if assignment.ID == "" {
		assignment.ID = "assignment-1"
	}
	m.assignments = append(m.assignments, *assignment)
	return nil
}

func (m *mockClassRepo) SubjectsByClass(ctx context.Context, classID string) ([]models.ClassSubject, error) {
	var out []models.ClassSubject
	for _, a := range m.assignments {
		if a.ClassID == classID {
			out = append(out, a)
		}
	}
	return out, nil
}

func TestClassServiceCreateClassChecksHomeroomRole(t *testing.T) {
	repo := newMockClassRepo()
	users := &mockGradeUsers{users: map[string]*models.User{
		"t1": {ID: "t1", Role: models.RoleTeacher},
		"s1": {ID: "s1", Role: models.RoleStudent},
	}}
	svc := NewClassService(repo, users, nil, nil)

	teacherID := "t1"
	class, err := svc.CreateClass(context.Background(), dto.CreateClassRequest{
		Name: "Class 8-A", GradeLevel: 8, HomeroomTeacherID: &teacherID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, class.ID)

	studentID := "s1"
	_, err = svc.CreateClass(context.Background(), dto.CreateClassRequest{
		Name: "Class 8-B", GradeLevel: 8, HomeroomTeacherID: &studentID,
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestClassServiceEnrollRejectsNonStudent(t *testing.T) {
	repo := newMockClassRepo()
	repo.classes["c1"] = &models.Class{ID: "c1", Name: "Class 8-A"}
	users := &mockGradeUsers{users: map[string]*models.User{
		"t1": {ID: "t1", Role: models.RoleTeacher},
	}}
	svc := NewClassService(repo, users, nil, nil)

	err := svc.EnrollStudent(context.Background(), "c1", dto.EnrollStudentRequest{StudentID: "t1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestClassServiceEnrollUnknownClass(t *testing.T) {
	svc := NewClassService(newMockClassRepo(), &mockGradeUsers{users: map[string]*models.User{}}, nil, nil)

	err := svc.EnrollStudent(context.Background(), "missing", dto.EnrollStudentRequest{StudentID: "s1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestClassServiceRemoveStudentNotEnrolled(t *testing.T) {
	repo := newMockClassRepo()
	svc := NewClassService(repo, &mockGradeUsers{users: map[string]*models.User{}}, nil, nil)

	err := svc.RemoveStudent(context.Background(), "c1", "s1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestClassServiceAssignSubject(t *testing.T) {
	repo := newMockClassRepo()
	repo.classes["c1"] = &models.Class{ID: "c1", Name: "Class 8-A"}
	users := &mockGradeUsers{users: map[string]*models.User{
		"t1": {ID: "t1", Role: models.RoleTeacher},
	}}
	svc := NewClassService(repo, users, nil, nil)

	assignment, err := svc.AssignSubject(context.Background(), "c1", dto.AssignSubjectRequest{
		SubjectID: "subj-1", TeacherID: "t1",
	})
	require.NoError(t, err)
	assert.Equal(t, "c1", assignment.ClassID)

	assigned, err := svc.ClassSubjects(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, "subj-1", assigned[0].SubjectID)
}
