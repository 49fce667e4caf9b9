package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
)

type mockAnalyticsRepo struct {
	roleCounts   []models.RoleCount
	classCount   int
	overall      *models.ClassAttendanceStats
	distribution []models.BucketCount
	classDist    []models.BucketCount
	top          []models.StudentScoreRow
	atRisk       []models.StudentScoreRow
}

func (m *mockAnalyticsRepo) UserCountsByRole(ctx context.Context) ([]models.RoleCount, error) {
	return m.roleCounts, nil
}

func (m *mockAnalyticsRepo) ClassCount(ctx context.Context) (int, error) {
	return m.classCount, nil
}

func (m *mockAnalyticsRepo) OverallAttendance(ctx context.Context) (*models.ClassAttendanceStats, error) {
	return m.overall, nil
}

func (m *mockAnalyticsRepo) GradeDistribution(ctx context.Context) ([]models.BucketCount, error) {
	return m.distribution, nil
}

func (m *mockAnalyticsRepo) ClassGradeDistribution(ctx context.Context, classID string) ([]models.BucketCount, error) {
	return m.classDist, nil
}

func (m *mockAnalyticsRepo) TopStudents(ctx context.Context, limit int) ([]models.StudentScoreRow, error) {
	if limit < len(m.top) {
		return m.top[:limit], nil
	}
	return m.top, nil
}

func (m *mockAnalyticsRepo) AtRiskStudents(ctx context.Context) ([]models.StudentScoreRow, error) {
	return m.atRisk, nil
}

type mockAnalyticsClasses struct {
	classes   map[string]*models.Class
	byTeacher []models.Class
	rosters   map[string][]models.ClassStudent
}

func (m *mockAnalyticsClasses) FindByID(ctx context.Context, id string) (*models.Class, error) {
	class, ok := m.classes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return class, nil
}

func (m *mockAnalyticsClasses) ListByTeacher(ctx context.Context, teacherID string) ([]models.Class, error) {
	return m.byTeacher, nil
}

func (m *mockAnalyticsClasses) StudentsByClass(ctx context.Context, classID string) ([]models.ClassStudent, error) {
	return m.rosters[classID], nil
}

type mockClassAttendance struct {
	stats *models.ClassAttendanceStats
}

func (m *mockClassAttendance) ClassStats(ctx context.Context, classID string) (*models.ClassAttendanceStats, error) {
	return m.stats, nil
}

func newAnalyticsService(repo *mockAnalyticsRepo, classes *mockAnalyticsClasses, attendance *mockClassAttendance) *AnalyticsService {
	return NewAnalyticsService(repo, classes, attendance, nil, NewMetricsService(), zap.NewNop(), 5)
}

func TestAtRiskFlagsGradelessStudent(t *testing.T) {
	repo := &mockAnalyticsRepo{atRisk: []models.StudentScoreRow{
		{ID: "student-1", Name: "Alice", AverageScore: 0, GradeCount: 0, Absences: 0},
	}}
	svc := newAnalyticsService(repo, &mockAnalyticsClasses{}, &mockClassAttendance{})

	atRisk, err := svc.AtRisk(context.Background())
	require.NoError(t, err)
	require.Len(t, atRisk, 1)
	assert.Equal(t, []string{"Low Grades"}, atRisk[0].Issues)
	assert.Equal(t, "0.00", atRisk[0].AverageScore)
}

func TestAtRiskNamesBothIssues(t *testing.T) {
	repo := &mockAnalyticsRepo{atRisk: []models.StudentScoreRow{
		{ID: "student-1", Name: "Alice", AverageScore: 45.5, Absences: 3},
		{ID: "student-2", Name: "Bob", AverageScore: 88, Absences: 2},
	}}
	svc := newAnalyticsService(repo, &mockAnalyticsClasses{}, &mockClassAttendance{})

	atRisk, err := svc.AtRisk(context.Background())
	require.NoError(t, err)
	require.Len(t, atRisk, 2)
	assert.Equal(t, []string{"Low Grades", "High Absences"}, atRisk[0].Issues)
	assert.Equal(t, []string{"High Absences"}, atRisk[1].Issues)
}

func TestTopStudentsRanksAndFormats(t *testing.T) {
	repo := &mockAnalyticsRepo{top: []models.StudentScoreRow{
		{ID: "student-1", Name: "Alice", AverageScore: 97.5, GradeCount: 4},
		{ID: "student-2", Name: "Bob", AverageScore: 91, GradeCount: 3},
	}}
	svc := newAnalyticsService(repo, &mockAnalyticsClasses{}, &mockClassAttendance{})

	top, err := svc.TopStudents(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, 1, top[0].Rank)
	assert.Equal(t, "97.50", top[0].AverageScore)
	assert.Equal(t, "A", top[0].LetterGrade)
	assert.Equal(t, 2, top[1].Rank)
	assert.Equal(t, "A-", top[1].LetterGrade)
}

func TestDashboardComposesBlocks(t *testing.T) {
	repo := &mockAnalyticsRepo{
		roleCounts: []models.RoleCount{
			{Role: models.RoleAdmin, Count: 1},
			{Role: models.RoleTeacher, Count: 3},
			{Role: models.RoleStudent, Count: 20},
			{Role: models.RoleParent, Count: 15},
		},
		classCount: 2,
		overall:    &models.ClassAttendanceStats{TotalRecords: 10, Present: 8, Absent: 1, Late: 1},
		distribution: []models.BucketCount{
			{Bucket: "A", Count: 6},
			{Bucket: "B", Count: 4},
		},
	}
	svc := newAnalyticsService(repo, &mockAnalyticsClasses{}, &mockClassAttendance{})

	dashboard, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 39, dashboard.Users.Total)
	assert.Equal(t, 20, dashboard.Users.Students)
	assert.Equal(t, 2, dashboard.Classes)
	assert.Equal(t, "80.00", dashboard.Attendance.PresentPercentage)
	require.Len(t, dashboard.GradeDistribution, 2)
	assert.Equal(t, "60.00", dashboard.GradeDistribution[0].Percentage)
	assert.Equal(t, "40.00", dashboard.GradeDistribution[1].Percentage)
}

func TestClassAnalyticsComposesRosterAndStats(t *testing.T) {
	repo := &mockAnalyticsRepo{classDist: []models.BucketCount{{Bucket: "A", Count: 2}}}
	classes := &mockAnalyticsClasses{
		classes: map[string]*models.Class{"class-1": {ID: "class-1", Name: "Grade 5A"}},
		rosters: map[string][]models.ClassStudent{"class-1": {{ID: "s1"}, {ID: "s2"}}},
	}
	attendance := &mockClassAttendance{stats: &models.ClassAttendanceStats{TotalRecords: 4, Present: 3, Absent: 1}}
	svc := newAnalyticsService(repo, classes, attendance)

	analytics, err := svc.ClassAnalytics(context.Background(), "class-1")
	require.NoError(t, err)
	assert.Equal(t, "Grade 5A", analytics.ClassName)
	assert.Equal(t, 2, analytics.Students)
	assert.Equal(t, "75.00", analytics.Attendance.PresentPercentage)
}
