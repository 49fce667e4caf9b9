package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
)

// ClassRepository handles classes, subjects, enrollments and
// teaching assignments.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository creates a new class repository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// Create inserts a new class.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	const query = `INSERT INTO classes (id, name, grade_level, homeroom_teacher_id)
        VALUES (:id, :name, :grade_level, :homeroom_teacher_id)`
	if _, err := r.db.NamedExecContext(ctx, query, class); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// List returns all classes with their homeroom teacher names.
func (r *ClassRepository) List(ctx context.Context) ([]models.Class, error) {
	const query = `SELECT c.id, c.name, c.grade_level, c.homeroom_teacher_id, u.name AS teacher_name
        FROM classes c
        LEFT JOIN users u ON c.homeroom_teacher_id = u.id
        ORDER BY c.grade_level, c.name`
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// FindByID returns one class.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*models.Class, error) {
	const query = `SELECT c.id, c.name, c.grade_level, c.homeroom_teacher_id, u.name AS teacher_name
        FROM classes c
        LEFT JOIN users u ON c.homeroom_teacher_id = u.id
        WHERE c.id = $1
        LIMIT 1`
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find class: %w", err)
	}
	return &class, nil
}

// ListByTeacher returns classes a teacher runs, either as homeroom teacher
// or through a subject assignment.
func (r *ClassRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.Class, error) {
	const query = `SELECT DISTINCT c.id, c.name, c.grade_level, c.homeroom_teacher_id, u.name AS teacher_name
        FROM classes c
        LEFT JOIN users u ON c.homeroom_teacher_id = u.id
        LEFT JOIN class_subjects cs ON c.id = cs.class_id
        WHERE c.homeroom_teacher_id = $1 OR cs.teacher_id = $1
        ORDER BY c.grade_level, c.name`
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, teacherID); err != nil {
		return nil, fmt.Errorf("list classes by teacher: %w", err)
	}
	return classes, nil
}

// Enroll adds a student to a class. Re-enrolling the same pair is a no-op.
func (r *ClassRepository) Enroll(ctx context.Context, studentID, classID string) error {
	const query = `INSERT INTO student_classes (id, student_id, class_id)
        VALUES ($1, $2, $3)
        ON CONFLICT (student_id, class_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, uuid.NewString(), studentID, classID); err != nil {
		return fmt.Errorf("enroll student: %w", err)
	}
	return nil
}

// RemoveStudent drops a student from a class roster.
func (r *ClassRepository) RemoveStudent(ctx context.Context, classID, studentID string) (int64, error) {
	const query = `DELETE FROM student_classes WHERE class_id = $1 AND student_id = $2`
	res, err := r.db.ExecContext(ctx, query, classID, studentID)
	if err != nil {
		return 0, fmt.Errorf("remove student from class: %w", err)
	}
	return res.RowsAffected()
}

// StudentsByClass returns the roster of a class.
func (r *ClassRepository) StudentsByClass(ctx context.Context, classID string) ([]models.ClassStudent, error) {
	const query = `SELECT u.id, u.name, u.email
        FROM users u
        JOIN student_classes sc ON u.id = sc.student_id
        WHERE sc.class_id = $1 AND u.role = 'STUDENT'
        ORDER BY u.name`
	var students []models.ClassStudent
	if err := r.db.SelectContext(ctx, &students, query, classID); err != nil {
		return nil, fmt.Errorf("list students by class: %w", err)
	}
	return students, nil
}

// CreateSubject inserts a new subject.
func (r *ClassRepository) CreateSubject(ctx context.Context, subject *models.Subject) error {
	if subject.ID == "" {
		subject.ID = uuid.NewString()
	}
	const query = `INSERT INTO subjects (id, name) VALUES (:id, :name)`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	return nil
}

// ListSubjects returns every subject.
func (r *ClassRepository) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	const query = `SELECT id, name FROM subjects ORDER BY name`
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// AssignSubject binds a subject and teacher to a class. The storage layer
// rejects a second assignment of the same (class, subject) pair.
func (r *ClassRepository) AssignSubject(ctx context.Context, assignment *models.ClassSubject) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	const query = `INSERT INTO class_subjects (id, class_id, subject_id, teacher_id)
        VALUES (:id, :class_id, :subject_id, :teacher_id)`
	if _, err := r.db.NamedExecContext(ctx, query, assignment); err != nil {
		return fmt.Errorf("assign subject: %w", err)
	}
	return nil
}

// SubjectsByClass returns subject assignments for a class with names joined.
func (r *ClassRepository) SubjectsByClass(ctx context.Context, classID string) ([]models.ClassSubject, error) {
	const query = `SELECT cs.id, cs.class_id, cs.subject_id, cs.teacher_id, s.name AS subject_name, u.name AS teacher_name
        FROM class_subjects cs
        JOIN subjects s ON cs.subject_id = s.id
        LEFT JOIN users u ON cs.teacher_id = u.id
        WHERE cs.class_id = $1
        ORDER BY s.name`
	var assignments []models.ClassSubject
	if err := r.db.SelectContext(ctx, &assignments, query, classID); err != nil {
		return nil, fmt.Errorf("list subjects by class: %w", err)
	}
	return assignments, nil
}
