package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/dto"
	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
	appErrors "github.com/KhobaitUddinSimran/Student-Management-System/pkg/errors"
)

type notificationRepository interface {
	Insert(ctx context.Context, n *models.Notification) error
	InsertBatch(ctx context.Context, notifications []models.Notification) (int, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	ListUnread(ctx context.Context, userID string) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	ListByType(ctx context.Context, userID string, t models.NotificationType) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) (int64, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	DeleteAllByUser(ctx context.Context, userID string) (int64, error)
	Summary(ctx context.Context, userID string) (*models.NotificationSummary, error)
}

type notificationUserRepo interface {
	ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)
}

// NotificationService owns the in-app notification feed.
type NotificationService struct {
	repo      notificationRepository
	users     notificationUserRepo
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	feedLimit int
}

// NewNotificationService constructs a NotificationService instance.
func NewNotificationService(repo notificationRepository, users notificationUserRepo, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, feedLimit int) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if feedLimit <= 0 {
		feedLimit = 50
	}
	return &NotificationService{repo: repo, users: users, metrics: metrics, validator: validate, logger: logger, feedLimit: feedLimit}
}

// Send creates one notification for one recipient.
func (s *NotificationService) Send(ctx context.Context, req dto.SendNotificationRequest) (*models.Notification, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid notification payload")
	}

	notificationType := models.NotificationType(req.Type)
	if req.Type == "" {
		notificationType = models.NotificationGeneral
	}
	if !notificationType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown notification type: "+req.Type)
	}

	notification := &models.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    notificationType,
	}
	if err := s.repo.Insert(ctx, notification); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store notification")
	}
	if s.metrics != nil {
		s.metrics.RecordNotification(string(notificationType))
	}
	return notification, nil
}

// Announce broadcasts one message to every user of a role, or to every user
// when no role is given. Delivery is best-effort per recipient.
func (s *NotificationService) Announce(ctx context.Context, req dto.AnnouncementRequest) (*dto.AnnouncementResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid announcement payload")
	}

	var recipients []models.User
	var err error
	if req.Role == "" {
		recipients, err = s.users.ListAll(ctx)
	} else {
		recipients, err = s.users.ListByRole(ctx, models.UserRole(req.Role))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve recipients")
	}

	batch := make([]models.Notification, 0, len(recipients))
	for _, recipient := range recipients {
		batch = append(batch, models.Notification{
			UserID:  recipient.ID,
			Title:   req.Title,
			Message: req.Message,
			Type:    models.NotificationAnnouncement,
		})
	}

	delivered, err := s.repo.InsertBatch(ctx, batch)
	if err != nil {
		s.logger.Warn("announcement delivery incomplete",
			zap.Int("recipients", len(recipients)),
			zap.Int("delivered", delivered),
			zap.Error(err))
	}
	if s.metrics != nil {
		for i := 0; i < delivered; i++ {
			s.metrics.RecordNotification(string(models.NotificationAnnouncement))
		}
	}
	return &dto.AnnouncementResult{Recipients: len(recipients), Delivered: delivered}, nil
}

// Feed returns the newest notifications for a recipient.
func (s *NotificationService) Feed(ctx context.Context, userID string) ([]models.Notification, error) {
	notifications, err := s.repo.ListByUser(ctx, userID, s.feedLimit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notifications")
	}
	return notifications, nil
}

// Unread returns the unread slice of the feed.
func (s *NotificationService) Unread(ctx context.Context, userID string) ([]models.Notification, error) {
	notifications, err := s.repo.ListUnread(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list unread notifications")
	}
	return notifications, nil
}

// UnreadCount returns the unread badge count.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	count, err := s.repo.UnreadCount(ctx, userID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count unread notifications")
	}
	return count, nil
}

// ByType filters the feed by one notification type.
func (s *NotificationService) ByType(ctx context.Context, userID, typeName string) ([]models.Notification, error) {
	notificationType := models.NotificationType(typeName)
	if !notificationType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown notification type: "+typeName)
	}
	notifications, err := s.repo.ListByType(ctx, userID, notificationType)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notifications by type")
	}
	return notifications, nil
}

// MarkRead flips one notification to read.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	affected, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark notification read")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "notification not found")
	}
	return nil
}

// MarkAllRead flips a recipient's whole feed to read and returns the count.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	affected, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark notifications read")
	}
	return affected, nil
}

// Delete removes one notification.
func (s *NotificationService) Delete(ctx context.Context, id string) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete notification")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "notification not found")
	}
	return nil
}

// Clear empties a recipient's feed and returns the count removed.
func (s *NotificationService) Clear(ctx context.Context, userID string) (int64, error) {
	affected, err := s.repo.DeleteAllByUser(ctx, userID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear notifications")
	}
	return affected, nil
}

// Summary aggregates a recipient's feed by type.
func (s *NotificationService) Summary(ctx context.Context, userID string) (*models.NotificationSummary, error) {
	summary, err := s.repo.Summary(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load notification summary")
	}
	return summary, nil
}
