package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
)

type observerUserRepo interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type observerNotificationRepo interface {
	Insert(ctx context.Context, n *models.Notification) error
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// EmailNotificationObserver simulates outbound grade alert emails. Delivery
// is a structured log line; no SMTP transport is wired.
type EmailNotificationObserver struct {
	users   observerUserRepo
	logger  *zap.Logger
	enabled bool
}

// NewEmailNotificationObserver constructs the email observer.
func NewEmailNotificationObserver(users observerUserRepo, logger *zap.Logger, enabled bool) *EmailNotificationObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailNotificationObserver{users: users, logger: logger, enabled: enabled}
}

// Name identifies the observer for registration and metrics.
func (o *EmailNotificationObserver) Name() string {
	return "email-notification"
}

// HandleGradeCreated sends the simulated email to the student's address.
func (o *EmailNotificationObserver) HandleGradeCreated(ctx context.Context, grade *models.Grade) error {
	if !o.enabled {
		return nil
	}
	student, err := o.users.FindByID(ctx, grade.StudentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("student %s not found", grade.StudentID)
		}
		return fmt.Errorf("load student: %w", err)
	}
	o.logger.Info("sending grade alert email",
		zap.String("to", student.Email),
		zap.String("subject", fmt.Sprintf("New Grade Alert: %s - %s", grade.Subject, formatScore(grade.Score))))
	return nil
}

// ParentPortalObserver writes grade notifications into the in-app feed. A
// linked parent is notified first, then the student; the student always
// receives one.
type ParentPortalObserver struct {
	users         observerUserRepo
	notifications observerNotificationRepo
	metrics       *MetricsService
	logger        *zap.Logger
}

// NewParentPortalObserver constructs the portal observer.
func NewParentPortalObserver(users observerUserRepo, notifications observerNotificationRepo, metrics *MetricsService, logger *zap.Logger) *ParentPortalObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParentPortalObserver{users: users, notifications: notifications, metrics: metrics, logger: logger}
}

// Name identifies the observer for registration and metrics.
func (o *ParentPortalObserver) Name() string {
	return "parent-portal"
}

// HandleGradeCreated feeds the linked parent, when present, and the student.
func (o *ParentPortalObserver) HandleGradeCreated(ctx context.Context, grade *models.Grade) error {
	student, err := o.users.FindByID(ctx, grade.StudentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("student %s not found", grade.StudentID)
		}
		return fmt.Errorf("load student: %w", err)
	}

	score := formatScore(grade.Score)
	if student.ParentID != nil && *student.ParentID != "" {
		parentNotification := &models.Notification{
			UserID:  *student.ParentID,
			Message: fmt.Sprintf("New Grade Alert: %s - %s", grade.Subject, score),
			Type:    models.NotificationGrade,
		}
		if err := o.notifications.Insert(ctx, parentNotification); err != nil {
			return fmt.Errorf("notify parent: %w", err)
		}
		if o.metrics != nil {
			o.metrics.RecordNotification(string(models.NotificationGrade))
		}
	}

	studentNotification := &models.Notification{
		UserID:  student.ID,
		Message: fmt.Sprintf("You received a new grade in %s: %s", grade.Subject, score),
		Type:    models.NotificationGrade,
	}
	if err := o.notifications.Insert(ctx, studentNotification); err != nil {
		return fmt.Errorf("notify student: %w", err)
	}
	if o.metrics != nil {
		o.metrics.RecordNotification(string(models.NotificationGrade))
	}
	return nil
}
