package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
)

// AnalyticsRepository runs the read-only aggregate queries behind the
// dashboard and reporting views.
type AnalyticsRepository struct {
	db *sqlx.DB
}

// NewAnalyticsRepository creates a new analytics repository.
func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// UserCountsByRole groups users by role.
func (r *AnalyticsRepository) UserCountsByRole(ctx context.Context) ([]models.RoleCount, error) {
	const query = `SELECT role, COUNT(*) AS count FROM users GROUP BY role`
	var counts []models.RoleCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count users by role: %w", err)
	}
	return counts, nil
}

// ClassCount returns the number of classes.
func (r *AnalyticsRepository) ClassCount(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM classes`
	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count classes: %w", err)
	}
	return count, nil
}

// OverallAttendance aggregates every attendance record by status.
func (r *AnalyticsRepository) OverallAttendance(ctx context.Context) (*models.ClassAttendanceStats, error) {
	const query = `SELECT
            COUNT(*) AS total_records,
            COALESCE(SUM(CASE WHEN status = 'PRESENT' THEN 1 ELSE 0 END), 0) AS present,
            COALESCE(SUM(CASE WHEN status = 'ABSENT' THEN 1 ELSE 0 END), 0) AS absent,
            COALESCE(SUM(CASE WHEN status = 'LATE' THEN 1 ELSE 0 END), 0) AS late
        FROM attendance`
	var stats models.ClassAttendanceStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("overall attendance stats: %w", err)
	}
	return &stats, nil
}

// Reporting distribution uses a coarser A-F bucketing (90/80/70/60) than the
// grade scale; the two must not be unified.
const distributionCase = `CASE
            WHEN %sscore >= 90 THEN 'A'
            WHEN %sscore >= 80 THEN 'B'
            WHEN %sscore >= 70 THEN 'C'
            WHEN %sscore >= 60 THEN 'D'
            ELSE 'F'
        END`

// GradeDistribution buckets every grade into the coarse A-F distribution.
func (r *AnalyticsRepository) GradeDistribution(ctx context.Context) ([]models.BucketCount, error) {
	query := fmt.Sprintf(`SELECT `+distributionCase+` AS bucket, COUNT(*) AS count
        FROM grades
        GROUP BY bucket
        ORDER BY bucket`, "", "", "", "")
	var buckets []models.BucketCount
	if err := r.db.SelectContext(ctx, &buckets, query); err != nil {
		return nil, fmt.Errorf("grade distribution: %w", err)
	}
	return buckets, nil
}

// ClassGradeDistribution buckets the grades of one class roster.
func (r *AnalyticsRepository) ClassGradeDistribution(ctx context.Context, classID string) ([]models.BucketCount, error) {
	query := fmt.Sprintf(`SELECT `+distributionCase+` AS bucket, COUNT(*) AS count
        FROM grades g
        JOIN student_classes sc ON g.student_id = sc.student_id
        WHERE sc.class_id = $1
        GROUP BY bucket
        ORDER BY bucket`, "g.", "g.", "g.", "g.")
	var buckets []models.BucketCount
	if err := r.db.SelectContext(ctx, &buckets, query, classID); err != nil {
		return nil, fmt.Errorf("class grade distribution: %w", err)
	}
	return buckets, nil
}

// TopStudents ranks students by mean score, best first.
func (r *AnalyticsRepository) TopStudents(ctx context.Context, limit int) ([]models.StudentScoreRow, error) {
	if limit <= 0 {
		limit = 5
	}
	const query = `SELECT u.id, u.name, AVG(g.score) AS average_score, COUNT(g.id) AS grade_count, 0 AS absences
        FROM users u
        JOIN grades g ON u.id = g.student_id
        WHERE u.role = 'STUDENT'
        GROUP BY u.id, u.name
        ORDER BY average_score DESC
        LIMIT $1`
	var rows []models.StudentScoreRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("top students: %w", err)
	}
	return rows, nil
}

// AtRiskStudents returns students whose mean score is below 60 or who were
// absent at least twice, worst mean first. Students with no grades average
// to zero and therefore qualify.
func (r *AnalyticsRepository) AtRiskStudents(ctx context.Context) ([]models.StudentScoreRow, error) {
	const query = `SELECT u.id, u.name,
            COALESCE(AVG(g.score), 0) AS average_score,
            COUNT(g.id) AS grade_count,
            (SELECT COUNT(*) FROM attendance a WHERE a.student_id = u.id AND a.status = 'ABSENT') AS absences
        FROM users u
        LEFT JOIN grades g ON u.id = g.student_id
        WHERE u.role = 'STUDENT'
        GROUP BY u.id, u.name
        HAVING COALESCE(AVG(g.score), 0) < 60
            OR (SELECT COUNT(*) FROM attendance a WHERE a.student_id = u.id AND a.status = 'ABSENT') >= 2
        ORDER BY average_score ASC`
	var rows []models.StudentScoreRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("at-risk students: %w", err)
	}
	return rows, nil
}
