package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
)

type recordingObserver struct {
	name    string
	calls   int
	fail    error
	doPanic bool
}

func (o *recordingObserver) Name() string { return o.name }

func (o *recordingObserver) HandleGradeCreated(ctx context.Context, grade *models.Grade) error {
	o.calls++
	if o.doPanic {
		panic("observer exploded")
	}
	return o.fail
}

func TestPublishDeliversInRegistrationOrder(t *testing.T) {
	publisher := NewGradePublisher(zap.NewNop(), nil)
	first := &recordingObserver{name: "first"}
	second := &recordingObserver{name: "second"}
	publisher.Subscribe(first)
	publisher.Subscribe(second)

	delivered := publisher.Publish(context.Background(), &models.Grade{StudentID: "student-1", Subject: "Math", Score: 90})
	assert.Equal(t, 2, delivered)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestPublishIsolatesFailingObserver(t *testing.T) {
	publisher := NewGradePublisher(zap.NewNop(), nil)
	first := &recordingObserver{name: "first", fail: errors.New("smtp down")}
	second := &recordingObserver{name: "second"}
	third := &recordingObserver{name: "third"}
	publisher.Subscribe(first)
	publisher.Subscribe(second)
	publisher.Subscribe(third)

	delivered := publisher.Publish(context.Background(), &models.Grade{StudentID: "student-1", Subject: "Math", Score: 90})
	assert.Equal(t, 2, delivered)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 1, third.calls)
}

func TestPublishRecoversFromObserverPanic(t *testing.T) {
	publisher := NewGradePublisher(zap.NewNop(), nil)
	panicking := &recordingObserver{name: "panicking", doPanic: true}
	steady := &recordingObserver{name: "steady"}
	publisher.Subscribe(panicking)
	publisher.Subscribe(steady)

	delivered := publisher.Publish(context.Background(), &models.Grade{StudentID: "student-1", Subject: "Math", Score: 90})
	assert.Equal(t, 1, delivered)
	assert.Equal(t, 1, steady.calls)
}

func TestUnsubscribeRemovesObserver(t *testing.T) {
	publisher := NewGradePublisher(zap.NewNop(), nil)
	observer := &recordingObserver{name: "email"}
	publisher.Subscribe(observer)

	require.True(t, publisher.Unsubscribe("email"))
	assert.False(t, publisher.Unsubscribe("email"))

	delivered := publisher.Publish(context.Background(), &models.Grade{StudentID: "student-1", Subject: "Math", Score: 90})
	assert.Equal(t, 0, delivered)
	assert.Equal(t, 0, observer.calls)
}

type feedRecorder struct {
	notifications []*models.Notification
	failFor       map[string]error
}

func (f *feedRecorder) Insert(ctx context.Context, n *models.Notification) error {
	if err, ok := f.failFor[n.UserID]; ok {
		return err
	}
	f.notifications = append(f.notifications, n)
	return nil
}

func TestParentPortalObserverFeedsLinkedParentThenStudent(t *testing.T) {
	parentID := "parent-1"
	users := &mockGradeUsers{users: map[string]*models.User{
		"student-1": {ID: "student-1", Name: "Alice", Role: models.RoleStudent, ParentID: &parentID},
	}}
	feed := &feedRecorder{}
	observer := NewParentPortalObserver(users, feed, nil, zap.NewNop())

	err := observer.HandleGradeCreated(context.Background(), &models.Grade{StudentID: "student-1", Subject: "Math", Score: 95})
	require.NoError(t, err)
	require.Len(t, feed.notifications, 2)
	assert.Equal(t, "parent-1", feed.notifications[0].UserID)
	assert.Equal(t, "New Grade Alert: Math - 95", feed.notifications[0].Message)
	assert.Equal(t, models.NotificationGrade, feed.notifications[0].Type)
	assert.Equal(t, "student-1", feed.notifications[1].UserID)
	assert.Equal(t, "You received a new grade in Math: 95", feed.notifications[1].Message)
}

func TestParentPortalObserverSkipsUnlinkedParent(t *testing.T) {
	users := &mockGradeUsers{users: map[string]*models.User{
		"student-2": {ID: "student-2", Name: "Bob", Role: models.RoleStudent},
	}}
	feed := &feedRecorder{}
	observer := NewParentPortalObserver(users, feed, nil, zap.NewNop())

	err := observer.HandleGradeCreated(context.Background(), &models.Grade{StudentID: "student-2", Subject: "Science", Score: 88.5})
	require.NoError(t, err)
	require.Len(t, feed.notifications, 1)
	assert.Equal(t, "student-2", feed.notifications[0].UserID)
	assert.Equal(t, "You received a new grade in Science: 88.5", feed.notifications[0].Message)
}
