package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
)

// GradeRepository handles grade persistence. Grades are append-only; there is
// no update or delete statement here on purpose.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository creates a new grade repository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// Insert persists a new grade row.
func (r *GradeRepository) Insert(ctx context.Context, grade *models.Grade) error {
	if grade.ID == "" {
		grade.ID = uuid.NewString()
	}
	if grade.CreatedAt.IsZero() {
		grade.CreatedAt = time.Now().UTC()
	}
	if grade.Weight == 0 {
		grade.Weight = 1.0
	}
	const query = `INSERT INTO grades (id, student_id, subject, score, weight, assessment_type, created_at)
        VALUES (:id, :student_id, :subject, :score, :weight, :assessment_type, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, grade); err != nil {
		return fmt.Errorf("insert grade: %w", err)
	}
	return nil
}

// ListByStudent returns a student's grades, most recent first.
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Grade, error) {
	const query = `SELECT id, student_id, subject, score, weight, assessment_type, created_at
        FROM grades WHERE student_id = $1 ORDER BY created_at DESC`
	var grades []models.Grade
	if err := r.db.SelectContext(ctx, &grades, query, studentID); err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	return grades, nil
}
