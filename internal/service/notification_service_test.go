package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/dto"
	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
	appErrors "github.com/KhobaitUddinSimran/Student-Management-System/pkg/errors"
)

type mockNotificationRepo struct {
	stored      []models.Notification
	batchErr    error
	markReadOK  bool
	markAllHits int64
	summary     *models.NotificationSummary
}

func (m *mockNotificationRepo) Insert(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = fmt.Sprintf("notification-%d", len(m.stored)+1)
	}
	m.stored = append(m.stored, *n)
	return nil
}

func (m *mockNotificationRepo) InsertBatch(ctx context.Context, notifications []models.Notification) (int, error) {
	if m.batchErr != nil {
		return len(notifications) - 1, m.batchErr
	}
	m.stored = append(m.stored, notifications...)
	return len(notifications), nil
}

func (m *mockNotificationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	return m.stored, nil
}

func (m *mockNotificationRepo) ListUnread(ctx context.Context, userID string) ([]models.Notification, error) {
	var unread []models.Notification
	for _, n := range m.stored {
		if !bool(n.IsRead) {
			unread = append(unread, n)
		}
	}
	return unread, nil
}

func (m *mockNotificationRepo) UnreadCount(ctx context.Context, userID string) (int, error) {
	unread, _ := m.ListUnread(ctx, userID)
	return len(unread), nil
}

func (m *mockNotificationRepo) ListByType(ctx context.Context, userID string, t models.NotificationType) ([]models.Notification, error) {
	var filtered []models.Notification
	for _, n := range m.stored {
		if n.Type == t {
			filtered = append(filtered, n)
		}
	}
	return filtered, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id string) (int64, error) {
	for i := range m.stored {
		if m.stored[i].ID == id && !bool(m.stored[i].IsRead) {
			m.stored[i].IsRead = true
			return 1, nil
		}
	}
	if m.markReadOK {
		return 1, nil
	}
	return 0, nil
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return m.markAllHits, nil
}

func (m *mockNotificationRepo) Delete(ctx context.Context, id string) (int64, error) {
	return 1, nil
}

func (m *mockNotificationRepo) DeleteAllByUser(ctx context.Context, userID string) (int64, error) {
	return int64(len(m.stored)), nil
}

func (m *mockNotificationRepo) Summary(ctx context.Context, userID string) (*models.NotificationSummary, error) {
	if m.summary != nil {
		return m.summary, nil
	}
	summary := &models.NotificationSummary{ByType: map[string]models.NotificationTypeCount{}}
	for _, n := range m.stored {
		if n.UserID != userID {
			continue
		}
		summary.Total++
		counts := summary.ByType[string(n.Type)]
		counts.Total++
		if !bool(n.IsRead) {
			summary.Unread++
			counts.Unread++
		}
		summary.ByType[string(n.Type)] = counts
	}
	return summary, nil
}

type mockNotificationUsers struct {
	byRole map[models.UserRole][]models.User
	all    []models.User
}

func (m *mockNotificationUsers) ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	return m.byRole[role], nil
}

func (m *mockNotificationUsers) ListAll(ctx context.Context) ([]models.User, error) {
	return m.all, nil
}

func newNotificationService(repo *mockNotificationRepo, users *mockNotificationUsers) *NotificationService {
	return NewNotificationService(repo, users, nil, validator.New(), zap.NewNop(), 50)
}

func TestSendDefaultsToGeneralType(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := newNotificationService(repo, &mockNotificationUsers{})

	notification, err := svc.Send(context.Background(), dto.SendNotificationRequest{
		UserID:  "user-1",
		Message: "Welcome aboard",
	})
	require.NoError(t, err)
	assert.Equal(t, models.NotificationGeneral, notification.Type)
	assert.False(t, bool(notification.IsRead))
	require.Len(t, repo.stored, 1)
}

func TestSendRejectsUnknownType(t *testing.T) {
	svc := newNotificationService(&mockNotificationRepo{}, &mockNotificationUsers{})

	_, err := svc.Send(context.Background(), dto.SendNotificationRequest{
		UserID:  "user-1",
		Message: "hello",
		Type:    "CARRIER_PIGEON",
	})
	require.Error(t, err)
}

func TestAnnounceTargetsRole(t *testing.T) {
	users := &mockNotificationUsers{byRole: map[models.UserRole][]models.User{
		models.RoleTeacher: {{ID: "teacher-1"}, {ID: "teacher-2"}},
	}}
	repo := &mockNotificationRepo{}
	svc := newNotificationService(repo, users)

	result, err := svc.Announce(context.Background(), dto.AnnouncementRequest{
		Message: "Staff meeting at noon",
		Role:    "TEACHER",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Recipients)
	assert.Equal(t, 2, result.Delivered)
	require.Len(t, repo.stored, 2)
	assert.Equal(t, models.NotificationAnnouncement, repo.stored[0].Type)
	assert.Equal(t, "teacher-1", repo.stored[0].UserID)
}

func TestAnnounceToEveryone(t *testing.T) {
	users := &mockNotificationUsers{all: []models.User{{ID: "a"}, {ID: "b"}, {ID: "c"}}}
	repo := &mockNotificationRepo{}
	svc := newNotificationService(repo, users)

	result, err := svc.Announce(context.Background(), dto.AnnouncementRequest{Message: "School closed tomorrow"})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Recipients)
	assert.Equal(t, 3, result.Delivered)
}

func TestMarkReadUnknownNotification(t *testing.T) {
	svc := newNotificationService(&mockNotificationRepo{markReadOK: false}, &mockNotificationUsers{})

	err := svc.MarkRead(context.Background(), "missing")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestByTypeValidatesType(t *testing.T) {
	svc := newNotificationService(&mockNotificationRepo{}, &mockNotificationUsers{})

	_, err := svc.ByType(context.Background(), "user-1", "UNKNOWN")
	require.Error(t, err)
}

func TestSummaryTracksMarkReadDelta(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := newNotificationService(repo, &mockNotificationUsers{})
	ctx := context.Background()

	graded, err := svc.Send(ctx, dto.SendNotificationRequest{UserID: "user-1", Message: "New grade posted", Type: "GRADE"})
	require.NoError(t, err)
	_, err = svc.Send(ctx, dto.SendNotificationRequest{UserID: "user-1", Message: "Another grade posted", Type: "GRADE"})
	require.NoError(t, err)
	_, err = svc.Send(ctx, dto.SendNotificationRequest{UserID: "user-1", Message: "Absence recorded", Type: "ATTENDANCE"})
	require.NoError(t, err)

	before, err := svc.Summary(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, 3, before.Total)
	require.Equal(t, 3, before.Unread)
	require.Equal(t, 2, before.ByType["GRADE"].Unread)

	require.NoError(t, svc.MarkRead(ctx, graded.ID))

	after, err := svc.Summary(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, before.Total, after.Total)
	assert.Equal(t, before.Unread-1, after.Unread)
	assert.Equal(t, before.ByType["GRADE"].Total, after.ByType["GRADE"].Total)
	assert.Equal(t, before.ByType["GRADE"].Unread-1, after.ByType["GRADE"].Unread)
	assert.Equal(t, before.ByType["ATTENDANCE"], after.ByType["ATTENDANCE"])
}

func TestSummaryPassthrough(t *testing.T) {
	repo := &mockNotificationRepo{summary: &models.NotificationSummary{
		Total:  5,
		Unread: 2,
		ByType: map[string]models.NotificationTypeCount{
			"GRADE":      {Total: 3, Unread: 1},
			"ATTENDANCE": {Total: 2, Unread: 1},
		},
	}}
	svc := newNotificationService(repo, &mockNotificationUsers{})

	summary, err := svc.Summary(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 2, summary.Unread)
	assert.Equal(t, 3, summary.ByType["GRADE"].Total)
}
