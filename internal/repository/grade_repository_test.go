package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	cleanup := func() {
		_ = sqlxDB.Close()
		db.Close()
	}
	return sqlxDB, mock, cleanup
}

func TestGradeRepositoryInsertFillsDefaults(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO grades")).
		WithArgs(sqlmock.AnyArg(), "student-1", "Math", 88.5, 1.0, "EXAM", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	grade := &models.Grade{
		StudentID:      "student-1",
		Subject:        "Math",
		Score:          88.5,
		AssessmentType: "EXAM",
	}
	err := repo.Insert(context.Background(), grade)
	require.NoError(t, err)
	assert.NotEmpty(t, grade.ID)
	assert.Equal(t, 1.0, grade.Weight)
	assert.False(t, grade.CreatedAt.IsZero())
}

func TestGradeRepositoryInsertKeepsExplicitWeight(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO grades")).
		WithArgs("grade-1", "student-1", "Science", 72.0, 2.0, "QUIZ", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	grade := &models.Grade{
		ID:             "grade-1",
		StudentID:      "student-1",
		Subject:        "Science",
		Score:          72,
		Weight:         2,
		AssessmentType: "QUIZ",
		CreatedAt:      time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Insert(context.Background(), grade))
	assert.Equal(t, 2.0, grade.Weight)
}

func TestGradeRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	rows := sqlmock.NewRows([]string{"id", "student_id", "subject", "score", "weight", "assessment_type", "created_at"}).
		AddRow("grade-2", "student-1", "Math", 95.0, 1.0, "EXAM", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)).
		AddRow("grade-1", "student-1", "Math", 80.0, 1.0, "QUIZ", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	mock.ExpectQuery(regexp.QuoteMeta("FROM grades WHERE student_id = $1 ORDER BY created_at DESC")).
		WithArgs("student-1").
		WillReturnRows(rows)

	grades, err := repo.ListByStudent(context.Background(), "student-1")
	require.NoError(t, err)
	require.Len(t, grades, 2)
	assert.Equal(t, "grade-2", grades[0].ID)
	assert.Equal(t, 95.0, grades[0].Score)
}
