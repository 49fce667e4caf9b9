package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsRepositoryUserCountsByRole(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAnalyticsRepository(db)

	rows := sqlmock.NewRows([]string{"role", "count"}).
		AddRow("STUDENT", 42).
		AddRow("TEACHER", 7)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT role, COUNT(*) AS count FROM users GROUP BY role")).
		WillReturnRows(rows)

	counts, err := repo.UserCountsByRole(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, models.UserRole("STUDENT"), counts[0].Role)
	assert.Equal(t, 42, counts[0].Count)
}

func TestAnalyticsRepositoryGradeDistribution(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAnalyticsRepository(db)

	rows := sqlmock.NewRows([]string{"bucket", "count"}).
		AddRow("A", 5).
		AddRow("B", 3).
		AddRow("F", 1)

	mock.ExpectQuery(regexp.QuoteMeta("WHEN score >= 90 THEN 'A'")).
		WillReturnRows(rows)

	buckets, err := repo.GradeDistribution(context.Background())
	require.NoError(t, err)
	require.Len(t, buckets, 3)
	assert.Equal(t, "A", buckets[0].Bucket)
	assert.Equal(t, 5, buckets[0].Count)
}

func TestAnalyticsRepositoryTopStudentsDefaultsLimit(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAnalyticsRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "average_score", "grade_count", "absences"}).
		AddRow("student-1", "Alice", 97.5, 4, 0)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY average_score DESC")).
		WithArgs(5).
		WillReturnRows(rows)

	top, err := repo.TopStudents(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 97.5, top[0].AverageScore)
}

func TestAnalyticsRepositoryAtRiskStudents(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAnalyticsRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "average_score", "grade_count", "absences"}).
		AddRow("student-2", "Bob", 0.0, 0, 0).
		AddRow("student-3", "Cara", 72.0, 3, 2)

	mock.ExpectQuery(regexp.QuoteMeta("HAVING COALESCE(AVG(g.score), 0) < 60")).
		WillReturnRows(rows)

	rowsOut, err := repo.AtRiskStudents(context.Background())
	require.NoError(t, err)
	require.Len(t, rowsOut, 2)
	assert.Equal(t, 0, rowsOut[0].GradeCount)
	assert.Equal(t, 2, rowsOut[1].Absences)
}
