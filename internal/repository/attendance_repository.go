package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
)

// AttendanceRepository handles daily attendance persistence. One row exists
// per (student_id, date) pair; re-marking replaces the stored status.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository creates a new attendance repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Upsert inserts or replaces a student's record for a date.
func (r *AttendanceRepository) Upsert(ctx context.Context, record *models.Attendance) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO attendance (id, student_id, date, status, marked_by, created_at)
        VALUES (:id, :student_id, :date, :status, :marked_by, :created_at)
        ON CONFLICT (student_id, date)
        DO UPDATE SET status = EXCLUDED.status, marked_by = EXCLUDED.marked_by, created_at = EXCLUDED.created_at`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("upsert attendance: %w", err)
	}
	return nil
}

// ListByDate returns all records for one calendar day with student names.
func (r *AttendanceRepository) ListByDate(ctx context.Context, date string) ([]models.AttendanceRecord, error) {
	const query = `SELECT a.id, a.student_id, a.date, a.status, a.marked_by, a.created_at, u.name AS student_name
        FROM attendance a
        JOIN users u ON a.student_id = u.id
        WHERE a.date = $1
        ORDER BY u.name`
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, date); err != nil {
		return nil, fmt.Errorf("list attendance by date: %w", err)
	}
	return records, nil
}

// ListByStudent returns a student's history, most recent day first.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Attendance, error) {
	const query = `SELECT id, student_id, date, status, marked_by, created_at
        FROM attendance WHERE student_id = $1 ORDER BY date DESC`
	var records []models.Attendance
	if err := r.db.SelectContext(ctx, &records, query, studentID); err != nil {
		return nil, fmt.Errorf("list attendance by student: %w", err)
	}
	return records, nil
}

// StudentStats aggregates one student's history by status.
func (r *AttendanceRepository) StudentStats(ctx context.Context, studentID string) (*models.AttendanceStats, error) {
	const query = `SELECT
            COUNT(*) AS total_days,
            COALESCE(SUM(CASE WHEN status = 'PRESENT' THEN 1 ELSE 0 END), 0) AS present_days,
            COALESCE(SUM(CASE WHEN status = 'ABSENT' THEN 1 ELSE 0 END), 0) AS absent_days,
            COALESCE(SUM(CASE WHEN status = 'LATE' THEN 1 ELSE 0 END), 0) AS late_days
        FROM attendance WHERE student_id = $1`
	var stats models.AttendanceStats
	if err := r.db.GetContext(ctx, &stats, query, studentID); err != nil {
		if err == sql.ErrNoRows {
			return &models.AttendanceStats{}, nil
		}
		return nil, fmt.Errorf("student attendance stats: %w", err)
	}
	return &stats, nil
}

// ClassStats aggregates every record belonging to a class roster.
func (r *AttendanceRepository) ClassStats(ctx context.Context, classID string) (*models.ClassAttendanceStats, error) {
	const query = `SELECT
            COUNT(*) AS total_records,
            COALESCE(SUM(CASE WHEN a.status = 'PRESENT' THEN 1 ELSE 0 END), 0) AS present,
            COALESCE(SUM(CASE WHEN a.status = 'ABSENT' THEN 1 ELSE 0 END), 0) AS absent,
            COALESCE(SUM(CASE WHEN a.status = 'LATE' THEN 1 ELSE 0 END), 0) AS late
        FROM attendance a
        JOIN student_classes sc ON a.student_id = sc.student_id
        WHERE sc.class_id = $1`
	var stats models.ClassAttendanceStats
	if err := r.db.GetContext(ctx, &stats, query, classID); err != nil {
		if err == sql.ErrNoRows {
			return &models.ClassAttendanceStats{}, nil
		}
		return nil, fmt.Errorf("class attendance stats: %w", err)
	}
	return &stats, nil
}

// Trends buckets records by calendar day from the cutoff date onward,
// most recent day first.
func (r *AttendanceRepository) Trends(ctx context.Context, cutoff string) ([]models.AttendanceTrend, error) {
	const query = `SELECT
            date,
            COUNT(*) AS total,
            COALESCE(SUM(CASE WHEN status = 'PRESENT' THEN 1 ELSE 0 END), 0) AS present,
            COALESCE(SUM(CASE WHEN status = 'ABSENT' THEN 1 ELSE 0 END), 0) AS absent,
            COALESCE(SUM(CASE WHEN status = 'LATE' THEN 1 ELSE 0 END), 0) AS late
        FROM attendance
        WHERE date >= $1
        GROUP BY date
        ORDER BY date DESC`
	var trends []models.AttendanceTrend
	if err := r.db.SelectContext(ctx, &trends, query, cutoff); err != nil {
		return nil, fmt.Errorf("attendance trends: %w", err)
	}
	return trends, nil
}

// AbsentStudents returns every ABSENT record on a date joined with the
// student's parent link for the notification fan-out.
func (r *AttendanceRepository) AbsentStudents(ctx context.Context, date string) ([]models.AbsentStudent, error) {
	const query = `SELECT a.student_id, u.name AS student_name, a.date, u.parent_id
        FROM attendance a
        JOIN users u ON a.student_id = u.id
        WHERE a.date = $1 AND a.status = 'ABSENT'`
	var absent []models.AbsentStudent
	if err := r.db.SelectContext(ctx, &absent, query, date); err != nil {
		return nil, fmt.Errorf("list absent students: %w", err)
	}
	return absent, nil
}
