package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
)

// UserRepository provides database access for user accounts and the
// parent-student link.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, role, parent_id, created_at`

// Create inserts a new user row.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO users (id, name, email, password_hash, role, parent_id, created_at)
        VALUES (:id, :name, :email, :password_hash, :role, :parent_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// FindByEmail returns a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// List returns users based on filters with total count.
func (r *UserRepository) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	baseQuery := `FROM users WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.Role != nil {
		conditions = append(conditions, fmt.Sprintf("role = $%d", len(args)+1))
		args = append(args, *filter.Role)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(email) LIKE $%d OR LOWER(name) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf("SELECT "+userColumns+" %s ORDER BY created_at DESC LIMIT %d OFFSET %d", baseQuery, pageSize, offset)
	var users []models.User
	if err := r.db.SelectContext(ctx, &users, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	countQuery := "SELECT COUNT(*) " + baseQuery
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	return users, total, nil
}

// ListByRole returns all users holding the given role, ordered by name.
func (r *UserRepository) ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY name`
	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query, role); err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	return users, nil
}

// ListAll returns every user row.
func (r *UserRepository) ListAll(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY name`
	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list all users: %w", err)
	}
	return users, nil
}

// LinkedStudents returns the students linked to the given parent.
func (r *UserRepository) LinkedStudents(ctx context.Context, parentID string) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE parent_id = $1 AND role = 'STUDENT' ORDER BY name`
	var students []models.User
	if err := r.db.SelectContext(ctx, &students, query, parentID); err != nil {
		return nil, fmt.Errorf("list linked students: %w", err)
	}
	return students, nil
}

// LinkParent sets the student's parent link and returns affected rows.
func (r *UserRepository) LinkParent(ctx context.Context, parentID, studentID string) (int64, error) {
	const query = `UPDATE users SET parent_id = $1 WHERE id = $2 AND role = 'STUDENT'`
	res, err := r.db.ExecContext(ctx, query, parentID, studentID)
	if err != nil {
		return 0, fmt.Errorf("link parent: %w", err)
	}
	return res.RowsAffected()
}

// UnlinkParent clears the student's parent link.
func (r *UserRepository) UnlinkParent(ctx context.Context, studentID string) (int64, error) {
	const query = `UPDATE users SET parent_id = NULL WHERE id = $1 AND role = 'STUDENT'`
	res, err := r.db.ExecContext(ctx, query, studentID)
	if err != nil {
		return 0, fmt.Errorf("unlink parent: %w", err)
	}
	return res.RowsAffected()
}

// IsParentLinked reports whether the parent is linked to the student.
func (r *UserRepository) IsParentLinked(ctx context.Context, parentID, studentID string) (bool, error) {
	const query = `SELECT COUNT(*) FROM users WHERE id = $1 AND parent_id = $2 AND role = 'STUDENT'`
	var count int
	if err := r.db.GetContext(ctx, &count, query, studentID, parentID); err != nil {
		return false, fmt.Errorf("check parent link: %w", err)
	}
	return count > 0, nil
}

// UnlinkedStudents returns students without a parent link.
func (r *UserRepository) UnlinkedStudents(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = 'STUDENT' AND parent_id IS NULL ORDER BY name`
	var students []models.User
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list unlinked students: %w", err)
	}
	return students, nil
}
