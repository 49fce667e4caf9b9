package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/dto"
	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
	appErrors "github.com/KhobaitUddinSimran/Student-Management-System/pkg/errors"
)

type attendanceRepository interface {
	Upsert(ctx context.Context, record *models.Attendance) error
	ListByDate(ctx context.Context, date string) ([]models.AttendanceRecord, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Attendance, error)
	StudentStats(ctx context.Context, studentID string) (*models.AttendanceStats, error)
	ClassStats(ctx context.Context, classID string) (*models.ClassAttendanceStats, error)
	Trends(ctx context.Context, cutoff string) ([]models.AttendanceTrend, error)
	AbsentStudents(ctx context.Context, date string) ([]models.AbsentStudent, error)
}

type attendanceNotificationRepo interface {
	Insert(ctx context.Context, n *models.Notification) error
}

// AttendanceService marks daily attendance and derives its aggregates.
// Marking the same student twice on one date replaces the earlier status.
type AttendanceService struct {
	repo          attendanceRepository
	notifications attendanceNotificationRepo
	metrics       *MetricsService
	validator     *validator.Validate
	logger        *zap.Logger
	trendDays     int
}

// NewAttendanceService constructs an AttendanceService instance.
func NewAttendanceService(repo attendanceRepository, notifications attendanceNotificationRepo, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, trendDays int) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if trendDays <= 0 {
		trendDays = 7
	}
	return &AttendanceService{repo: repo, notifications: notifications, metrics: metrics, validator: validate, logger: logger, trendDays: trendDays}
}

// Mark records one student's status for a date.
func (s *AttendanceService) Mark(ctx context.Context, req dto.MarkAttendanceRequest, markedBy string) (*models.Attendance, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}

	record := &models.Attendance{
		StudentID: req.StudentID,
		Date:      req.Date,
		Status:    models.AttendanceStatus(req.Status),
		MarkedBy:  markedBy,
	}
	if err := s.repo.Upsert(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store attendance")
	}
	return record, nil
}

// MarkBatch records a roster for one date. Items are stored one at a time;
// a failing item is reported and does not stop the rest. Once the roster is
// stored, absence notifications for the date fan out to linked parents.
func (s *AttendanceService) MarkBatch(ctx context.Context, req dto.BulkAttendanceRequest, markedBy string) (*dto.BulkAttendanceResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk attendance payload")
	}

	result := &dto.BulkAttendanceResult{}
	for _, item := range req.Records {
		record := &models.Attendance{
			StudentID: item.StudentID,
			Date:      req.Date,
			Status:    models.AttendanceStatus(item.Status),
			MarkedBy:  markedBy,
		}
		if err := s.repo.Upsert(ctx, record); err != nil {
			s.logger.Warn("bulk attendance item failed",
				zap.String("student_id", item.StudentID),
				zap.String("date", req.Date),
				zap.Error(err))
			result.Failed = append(result.Failed, dto.BulkAttendanceFail{StudentID: item.StudentID, Reason: err.Error()})
			continue
		}
		result.Marked++
	}

	// Fan-out failures never fail the batch; the records are already durable.
	if _, err := s.NotifyAbsences(ctx, dto.NotifyAbsencesRequest{Date: req.Date}); err != nil {
		s.logger.Warn("absence fan-out after bulk mark failed",
			zap.String("date", req.Date),
			zap.Error(err))
	}
	return result, nil
}

// ListByDate returns a day's records with student names.
func (s *AttendanceService) ListByDate(ctx context.Context, date string) ([]models.AttendanceRecord, error) {
	records, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	return records, nil
}

// ListByStudent returns one student's history.
func (s *AttendanceService) ListByStudent(ctx context.Context, studentID string) ([]models.Attendance, error) {
	records, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	return records, nil
}

// StudentStats aggregates a student's history and derives the attendance
// percentage as a fixed two-decimal string.
func (s *AttendanceService) StudentStats(ctx context.Context, studentID string) (*models.AttendanceStats, error) {
	stats, err := s.repo.StudentStats(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance stats")
	}
	stats.AttendancePercentage = percentage(stats.PresentDays, stats.TotalDays)
	return stats, nil
}

// ClassStats aggregates every record of a class roster.
func (s *AttendanceService) ClassStats(ctx context.Context, classID string) (*models.ClassAttendanceStats, error) {
	stats, err := s.repo.ClassStats(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class attendance stats")
	}
	stats.PresentPercentage = percentage(stats.Present, stats.TotalRecords)
	return stats, nil
}

// Trends buckets the trailing window by calendar day.
func (s *AttendanceService) Trends(ctx context.Context) ([]models.AttendanceTrend, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -s.trendDays).Format("2006-01-02")
	trends, err := s.repo.Trends(ctx, cutoff)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance trends")
	}
	for i := range trends {
		trends[i].PresentPercentage = percentage(trends[i].Present, trends[i].Total)
	}
	return trends, nil
}

// NotifyAbsences fans one notification out per absent student whose account
// carries a parent link. Unlinked students are counted and skipped.
func (s *AttendanceService) NotifyAbsences(ctx context.Context, req dto.NotifyAbsencesRequest) (*dto.NotifyAbsencesResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid notify payload")
	}

	absent, err := s.repo.AbsentStudents(ctx, req.Date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list absent students")
	}

	title := "Attendance Alert"
	result := &dto.NotifyAbsencesResult{AbsentStudents: len(absent)}
	for _, student := range absent {
		if student.ParentID == nil || *student.ParentID == "" {
			result.WithoutParent++
			continue
		}
		notification := &models.Notification{
			UserID:  *student.ParentID,
			Title:   &title,
			Message: fmt.Sprintf("Your child %s was marked ABSENT on %s.", student.StudentName, student.Date),
			Type:    models.NotificationAttendance,
		}
		if err := s.notifications.Insert(ctx, notification); err != nil {
			s.logger.Warn("absence notification failed",
				zap.String("student_id", student.StudentID),
				zap.String("parent_id", *student.ParentID),
				zap.Error(err))
			continue
		}
		if s.metrics != nil {
			s.metrics.RecordNotification(string(models.NotificationAttendance))
		}
		result.ParentsNotified++
	}
	return result, nil
}

func percentage(part, total int) string {
	if total == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(part)/float64(total)*100)
}
