package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/dto"
	"github.com/KhobaitUddinSimran/Student-Management-System/internal/gradescale"
	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
	appErrors "github.com/KhobaitUddinSimran/Student-Management-System/pkg/errors"
)

const (
	dashboardCacheKey = "analytics:dashboard"

	atRiskScoreThreshold   = 60.0
	atRiskAbsenceThreshold = 2
)

type analyticsRepository interface {
	UserCountsByRole(ctx context.Context) ([]models.RoleCount, error)
	ClassCount(ctx context.Context) (int, error)
	OverallAttendance(ctx context.Context) (*models.ClassAttendanceStats, error)
	GradeDistribution(ctx context.Context) ([]models.BucketCount, error)
	ClassGradeDistribution(ctx context.Context, classID string) ([]models.BucketCount, error)
	TopStudents(ctx context.Context, limit int) ([]models.StudentScoreRow, error)
	AtRiskStudents(ctx context.Context) ([]models.StudentScoreRow, error)
}

type analyticsClassRepo interface {
	FindByID(ctx context.Context, id string) (*models.Class, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]models.Class, error)
	StudentsByClass(ctx context.Context, classID string) ([]models.ClassStudent, error)
}

type analyticsAttendanceRepo interface {
	ClassStats(ctx context.Context, classID string) (*models.ClassAttendanceStats, error)
}

// AnalyticsService composes the dashboard and reporting views. The dashboard
// payload is cached; everything else is computed per request.
type AnalyticsService struct {
	repo       analyticsRepository
	classes    analyticsClassRepo
	attendance analyticsAttendanceRepo
	cache      *CacheService
	metrics    *MetricsService
	logger     *zap.Logger
	topLimit   int
}

// NewAnalyticsService constructs an AnalyticsService instance.
func NewAnalyticsService(repo analyticsRepository, classes analyticsClassRepo, attendance analyticsAttendanceRepo, cache *CacheService, metrics *MetricsService, logger *zap.Logger, topLimit int) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if topLimit <= 0 {
		topLimit = 5
	}
	return &AnalyticsService{repo: repo, classes: classes, attendance: attendance, cache: cache, metrics: metrics, logger: logger, topLimit: topLimit}
}

// Dashboard assembles the admin overview.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*dto.Dashboard, error) {
	var cached dto.Dashboard
	if s.cache != nil {
		if hit, _ := s.cache.Get(ctx, dashboardCacheKey, &cached); hit {
			cached.System = s.metrics.Snapshot()
			return &cached, nil
		}
	}

	roleCounts, err := s.repo.UserCountsByRole(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count users")
	}

	classCount, err := s.repo.ClassCount(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count classes")
	}

	attendance, err := s.repo.OverallAttendance(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance overview")
	}

	distribution, err := s.repo.GradeDistribution(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade distribution")
	}

	top, err := s.TopStudents(ctx, s.topLimit)
	if err != nil {
		return nil, err
	}

	atRisk, err := s.AtRisk(ctx)
	if err != nil {
		return nil, err
	}

	dashboard := &dto.Dashboard{
		Users:   userStats(roleCounts),
		Classes: classCount,
		Attendance: dto.AttendanceOverview{
			TotalRecords:      attendance.TotalRecords,
			Present:           attendance.Present,
			Absent:            attendance.Absent,
			Late:              attendance.Late,
			PresentPercentage: percentage(attendance.Present, attendance.TotalRecords),
		},
		GradeDistribution: distributionEntries(distribution),
		TopStudents:       top,
		AtRiskStudents:    atRisk,
		System:            s.metrics.Snapshot(),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, dashboardCacheKey, dashboard, 0); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return dashboard, nil
}

// InvalidateDashboard drops the cached dashboard payload.
func (s *AnalyticsService) InvalidateDashboard(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, "analytics:*"); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}

// TopStudents ranks students by mean score.
func (s *AnalyticsService) TopStudents(ctx context.Context, limit int) ([]dto.TopStudent, error) {
	if limit <= 0 {
		limit = s.topLimit
	}
	rows, err := s.repo.TopStudents(ctx, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load top students")
	}

	top := make([]dto.TopStudent, 0, len(rows))
	for i, row := range rows {
		top = append(top, dto.TopStudent{
			Rank:         i + 1,
			StudentID:    row.ID,
			Name:         row.Name,
			AverageScore: fmt.Sprintf("%.2f", row.AverageScore),
			LetterGrade:  gradescale.ScoreToLetterGrade(row.AverageScore),
			GradeCount:   row.GradeCount,
		})
	}
	return top, nil
}

// AtRisk flags students whose mean score falls below 60 or who were absent
// at least twice, and names the reason for each flag. A student with no
// grades averages to zero and is flagged for low grades.
func (s *AnalyticsService) AtRisk(ctx context.Context) ([]dto.AtRiskStudent, error) {
	rows, err := s.repo.AtRiskStudents(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load at-risk students")
	}

	atRisk := make([]dto.AtRiskStudent, 0, len(rows))
	for _, row := range rows {
		var issues []string
		if row.AverageScore < atRiskScoreThreshold {
			issues = append(issues, "Low Grades")
		}
		if row.Absences >= atRiskAbsenceThreshold {
			issues = append(issues, "High Absences")
		}
		atRisk = append(atRisk, dto.AtRiskStudent{
			StudentID:    row.ID,
			Name:         row.Name,
			AverageScore: fmt.Sprintf("%.2f", row.AverageScore),
			Absences:     row.Absences,
			Issues:       issues,
		})
	}
	return atRisk, nil
}

// ClassAnalytics composes the per-class view.
func (s *AnalyticsService) ClassAnalytics(ctx context.Context, classID string) (*dto.ClassAnalytics, error) {
	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}

	students, err := s.classes.StudentsByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class roster")
	}

	distribution, err := s.repo.ClassGradeDistribution(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class distribution")
	}

	stats, err := s.attendance.ClassStats(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class attendance")
	}
	stats.PresentPercentage = percentage(stats.Present, stats.TotalRecords)

	return &dto.ClassAnalytics{
		ClassID:           class.ID,
		ClassName:         class.Name,
		Students:          len(students),
		GradeDistribution: distributionEntries(distribution),
		Attendance:        *stats,
	}, nil
}

// TeacherAnalytics composes the per-class view for every class a teacher runs.
func (s *AnalyticsService) TeacherAnalytics(ctx context.Context, teacherID string) (*dto.TeacherAnalytics, error) {
	classes, err := s.classes.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teacher classes")
	}

	result := &dto.TeacherAnalytics{TeacherID: teacherID, Classes: make([]dto.ClassAnalytics, 0, len(classes))}
	for _, class := range classes {
		analytics, err := s.ClassAnalytics(ctx, class.ID)
		if err != nil {
			s.logger.Warn("class analytics failed", zap.String("class_id", class.ID), zap.Error(err))
			continue
		}
		result.Classes = append(result.Classes, *analytics)
	}
	return result, nil
}

func userStats(counts []models.RoleCount) dto.UserStats {
	stats := dto.UserStats{}
	for _, count := range counts {
		stats.Total += count.Count
		switch count.Role {
		case models.RoleAdmin:
			stats.Admins = count.Count
		case models.RoleTeacher:
			stats.Teachers = count.Count
		case models.RoleStudent:
			stats.Students = count.Count
		case models.RoleParent:
			stats.Parents = count.Count
		}
	}
	return stats
}

func distributionEntries(buckets []models.BucketCount) []dto.DistributionEntry {
	total := 0
	for _, bucket := range buckets {
		total += bucket.Count
	}
	entries := make([]dto.DistributionEntry, 0, len(buckets))
	for _, bucket := range buckets {
		entries = append(entries, dto.DistributionEntry{
			Bucket:     bucket.Bucket,
			Count:      bucket.Count,
			Percentage: percentage(bucket.Count, total),
		})
	}
	return entries
}
