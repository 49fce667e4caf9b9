package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/dto"
	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
)

type mockAttendanceRepo struct {
	upserted   []*models.Attendance
	upsertFail map[string]error
	stats      *models.AttendanceStats
	classStats *models.ClassAttendanceStats
	trends     []models.AttendanceTrend
	absent     []models.AbsentStudent
	byDate     []models.AttendanceRecord
	byStudent  []models.Attendance
}

func (m *mockAttendanceRepo) Upsert(ctx context.Context, record *models.Attendance) error {
	if err, ok := m.upsertFail[record.StudentID]; ok {
		return err
	}
	m.upserted = append(m.upserted, record)
	return nil
}

func (m *mockAttendanceRepo) ListByDate(ctx context.Context, date string) ([]models.AttendanceRecord, error) {
	return m.byDate, nil
}

func (m *mockAttendanceRepo) ListByStudent(ctx context.Context, studentID string) ([]models.Attendance, error) {
	return m.byStudent, nil
}

func (m *mockAttendanceRepo) StudentStats(ctx context.Context, studentID string) (*models.AttendanceStats, error) {
	return m.stats, nil
}

func (m *mockAttendanceRepo) ClassStats(ctx context.Context, classID string) (*models.ClassAttendanceStats, error) {
	return m.classStats, nil
}

func (m *mockAttendanceRepo) Trends(ctx context.Context, cutoff string) ([]models.AttendanceTrend, error) {
	return m.trends, nil
}

func (m *mockAttendanceRepo) AbsentStudents(ctx context.Context, date string) ([]models.AbsentStudent, error) {
	return m.absent, nil
}

func newAttendanceService(repo *mockAttendanceRepo, feed *feedRecorder) *AttendanceService {
	return NewAttendanceService(repo, feed, nil, validator.New(), zap.NewNop(), 7)
}

func TestMarkReplacesStatusForSameDay(t *testing.T) {
	repo := &mockAttendanceRepo{}
	svc := newAttendanceService(repo, &feedRecorder{})

	record, err := svc.Mark(context.Background(), dto.MarkAttendanceRequest{
		StudentID: "student-1",
		Date:      "2026-03-02",
		Status:    "LATE",
	}, "teacher-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusLate, record.Status)
	assert.Equal(t, "teacher-1", record.MarkedBy)
	require.Len(t, repo.upserted, 1)
}

func TestMarkRejectsUnknownStatus(t *testing.T) {
	svc := newAttendanceService(&mockAttendanceRepo{}, &feedRecorder{})

	_, err := svc.Mark(context.Background(), dto.MarkAttendanceRequest{
		StudentID: "student-1",
		Date:      "2026-03-02",
		Status:    "SLEEPING",
	}, "teacher-1")
	require.Error(t, err)
}

func TestMarkBatchReportsPartialFailures(t *testing.T) {
	repo := &mockAttendanceRepo{upsertFail: map[string]error{"student-2": errors.New("db down")}}
	svc := newAttendanceService(repo, &feedRecorder{})

	result, err := svc.MarkBatch(context.Background(), dto.BulkAttendanceRequest{
		Date: "2026-03-02",
		Records: []dto.BulkAttendanceItem{
			{StudentID: "student-1", Status: "PRESENT"},
			{StudentID: "student-2", Status: "ABSENT"},
			{StudentID: "student-3", Status: "PRESENT"},
		},
	}, "teacher-1")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Marked)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "student-2", result.Failed[0].StudentID)
}

func TestMarkBatchNotifiesParentsOfAbsentees(t *testing.T) {
	parentID := "parent-1"
	repo := &mockAttendanceRepo{absent: []models.AbsentStudent{
		{StudentID: "student-1", StudentName: "Alice", Date: "2026-08-28", ParentID: &parentID},
	}}
	feed := &feedRecorder{}
	svc := newAttendanceService(repo, feed)

	result, err := svc.MarkBatch(context.Background(), dto.BulkAttendanceRequest{
		Date: "2026-08-28",
		Records: []dto.BulkAttendanceItem{
			{StudentID: "student-1", Status: "ABSENT"},
			{StudentID: "student-2", Status: "PRESENT"},
		},
	}, "teacher-1")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Marked)

	require.Len(t, feed.notifications, 1)
	assert.Equal(t, "parent-1", feed.notifications[0].UserID)
	require.NotNil(t, feed.notifications[0].Title)
	assert.Equal(t, "Attendance Alert", *feed.notifications[0].Title)
	assert.Equal(t, "Your child Alice was marked ABSENT on 2026-08-28.", feed.notifications[0].Message)
	assert.Equal(t, models.NotificationAttendance, feed.notifications[0].Type)
}

func TestStudentStatsPercentage(t *testing.T) {
	repo := &mockAttendanceRepo{stats: &models.AttendanceStats{
		TotalDays:   4,
		PresentDays: 3,
		AbsentDays:  1,
	}}
	svc := newAttendanceService(repo, &feedRecorder{})

	stats, err := svc.StudentStats(context.Background(), "student-1")
	require.NoError(t, err)
	assert.Equal(t, "75.00", stats.AttendancePercentage)
}

func TestStudentStatsPercentageWithoutRecords(t *testing.T) {
	repo := &mockAttendanceRepo{stats: &models.AttendanceStats{}}
	svc := newAttendanceService(repo, &feedRecorder{})

	stats, err := svc.StudentStats(context.Background(), "student-1")
	require.NoError(t, err)
	assert.Equal(t, "0.00", stats.AttendancePercentage)
}

func TestNotifyAbsencesSkipsUnlinkedStudents(t *testing.T) {
	parent1 := "parent-1"
	parent2 := "parent-2"
	repo := &mockAttendanceRepo{absent: []models.AbsentStudent{
		{StudentID: "student-1", StudentName: "Alice", Date: "2026-03-02", ParentID: &parent1},
		{StudentID: "student-2", StudentName: "Bob", Date: "2026-03-02"},
		{StudentID: "student-3", StudentName: "Cara", Date: "2026-03-02", ParentID: &parent2},
	}}
	feed := &feedRecorder{}
	svc := newAttendanceService(repo, feed)

	result, err := svc.NotifyAbsences(context.Background(), dto.NotifyAbsencesRequest{Date: "2026-03-02"})
	require.NoError(t, err)
	assert.Equal(t, 3, result.AbsentStudents)
	assert.Equal(t, 2, result.ParentsNotified)
	assert.Equal(t, 1, result.WithoutParent)

	require.Len(t, feed.notifications, 2)
	assert.Equal(t, "parent-1", feed.notifications[0].UserID)
	require.NotNil(t, feed.notifications[0].Title)
	assert.Equal(t, "Attendance Alert", *feed.notifications[0].Title)
	assert.Equal(t, "Your child Alice was marked ABSENT on 2026-03-02.", feed.notifications[0].Message)
	assert.Equal(t, models.NotificationAttendance, feed.notifications[0].Type)
	assert.Equal(t, "parent-2", feed.notifications[1].UserID)
}

func TestNotifyAbsencesToleratesDeliveryFailure(t *testing.T) {
	parent1 := "parent-1"
	parent2 := "parent-2"
	repo := &mockAttendanceRepo{absent: []models.AbsentStudent{
		{StudentID: "student-1", StudentName: "Alice", Date: "2026-03-02", ParentID: &parent1},
		{StudentID: "student-3", StudentName: "Cara", Date: "2026-03-02", ParentID: &parent2},
	}}
	feed := &feedRecorder{failFor: map[string]error{"parent-1": errors.New("insert failed")}}
	svc := newAttendanceService(repo, feed)

	result, err := svc.NotifyAbsences(context.Background(), dto.NotifyAbsencesRequest{Date: "2026-03-02"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.ParentsNotified)
	require.Len(t, feed.notifications, 1)
	assert.Equal(t, "parent-2", feed.notifications[0].UserID)
}

func TestTrendsDerivePercentages(t *testing.T) {
	repo := &mockAttendanceRepo{trends: []models.AttendanceTrend{
		{Date: "2026-03-02", Total: 4, Present: 3, Absent: 1},
		{Date: "2026-03-01", Total: 2, Present: 2},
	}}
	svc := newAttendanceService(repo, &feedRecorder{})

	trends, err := svc.Trends(context.Background())
	require.NoError(t, err)
	require.Len(t, trends, 2)
	assert.Equal(t, "75.00", trends[0].PresentPercentage)
	assert.Equal(t, "100.00", trends[1].PresentPercentage)
}
