package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/dto"
	"github.com/KhobaitUddinSimran/Student-Management-System/internal/gradescale"
	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
	appErrors "github.com/KhobaitUddinSimran/Student-Management-System/pkg/errors"
)

const recentGradeCount = 5

type gradeRepository interface {
	Insert(ctx context.Context, grade *models.Grade) error
	ListByStudent(ctx context.Context, studentID string) ([]models.Grade, error)
}

type gradeUserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type gradeEventPublisher interface {
	Publish(ctx context.Context, grade *models.Grade) int
}

// GradeService records assessments and computes grade-point aggregates. All
// averages run over raw stored values; rounding happens once, at the edge of
// the response.
type GradeService struct {
	repo      gradeRepository
	users     gradeUserRepository
	publisher gradeEventPublisher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGradeService constructs a GradeService instance.
func NewGradeService(repo gradeRepository, users gradeUserRepository, publisher gradeEventPublisher, validate *validator.Validate, logger *zap.Logger) *GradeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &GradeService{repo: repo, users: users, publisher: publisher, validator: validate, logger: logger}
}

// AddGrade stores a new grade and fans the event out to observers. Observer
// failures never fail the write.
func (s *GradeService) AddGrade(ctx context.Context, req dto.CreateGradeRequest) (*models.Grade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}

	student, err := s.users.FindByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if student.Role != models.RoleStudent {
		return nil, appErrors.Clone(appErrors.ErrValidation, "grades can only be recorded for students")
	}

	grade := &models.Grade{
		StudentID:      req.StudentID,
		Subject:        req.Subject,
		Score:          req.Score,
		Weight:         req.Weight,
		AssessmentType: req.AssessmentType,
	}
	if grade.AssessmentType == "" {
		grade.AssessmentType = "EXAM"
	}

	if err := s.repo.Insert(ctx, grade); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store grade")
	}

	grade.LetterGrade = gradescale.ScoreToLetterGrade(grade.Score)
	grade.GradePoints = gradescale.ScoreToGradePoints(grade.Score)

	if s.publisher != nil {
		delivered := s.publisher.Publish(ctx, grade)
		s.logger.Debug("grade event published",
			zap.String("grade_id", grade.ID),
			zap.Int("observers_delivered", delivered))
	}

	return grade, nil
}

// ListGrades returns a student's grades with derived letter grades attached.
func (s *GradeService) ListGrades(ctx context.Context, studentID string) ([]models.Grade, error) {
	grades, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}
	for i := range grades {
		grades[i].LetterGrade = gradescale.ScoreToLetterGrade(grades[i].Score)
		grades[i].GradePoints = gradescale.ScoreToGradePoints(grades[i].Score)
	}
	return grades, nil
}

// SimpleGPA averages raw scores across every assessment equally, then
// converts the mean once to grade points. A student with no grades reports a
// zero GPA and the N/A letter sentinel.
func (s *GradeService) SimpleGPA(ctx context.Context, studentID string) (*models.GPAResult, error) {
	grades, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}

	if len(grades) == 0 {
		return &models.GPAResult{GPA: 0, LetterGrade: "N/A"}, nil
	}

	var scoreSum float64
	for _, grade := range grades {
		scoreSum += grade.Score
	}
	avg := scoreSum / float64(len(grades))

	return &models.GPAResult{
		GPA:              gradescale.ScoreToGradePoints(avg),
		LetterGrade:      gradescale.ScoreToLetterGrade(avg),
		AverageScore:     round2(avg),
		TotalAssessments: len(grades),
	}, nil
}

// WeightedGPA averages per-subject grade points, each subject counting once
// regardless of how many assessments it holds.
func (s *GradeService) WeightedGPA(ctx context.Context, studentID string) (*models.WeightedGPAResult, error) {
	grades, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}
	return weightedGPA(grades), nil
}

// AcademicSummary composes the full per-student view in one call.
func (s *GradeService) AcademicSummary(ctx context.Context, studentID string) (*models.AcademicSummary, error) {
	grades, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}
	for i := range grades {
		grades[i].LetterGrade = gradescale.ScoreToLetterGrade(grades[i].Score)
		grades[i].GradePoints = gradescale.ScoreToGradePoints(grades[i].Score)
	}

	recent := grades
	if len(recent) > recentGradeCount {
		recent = recent[:recentGradeCount]
	}

	return &models.AcademicSummary{
		StudentID:    studentID,
		Grades:       grades,
		Subjects:     subjectStats(grades),
		WeightedGPA:  *weightedGPA(grades),
		RecentGrades: recent,
	}, nil
}

func weightedGPA(grades []models.Grade) *models.WeightedGPAResult {
	if len(grades) == 0 {
		return &models.WeightedGPAResult{GPA: 0, LetterGrade: "N/A", Subjects: []models.SubjectGPA{}}
	}

	type subjectAcc struct {
		sum   float64
		count int
	}
	bySubject := map[string]*subjectAcc{}
	var order []string
	for _, grade := range grades {
		acc, ok := bySubject[grade.Subject]
		if !ok {
			acc = &subjectAcc{}
			bySubject[grade.Subject] = acc
			order = append(order, grade.Subject)
		}
		acc.sum += grade.Score
		acc.count++
	}
	sort.Strings(order)

	subjects := make([]models.SubjectGPA, 0, len(order))
	var pointsSum float64
	for _, subject := range order {
		acc := bySubject[subject]
		avg := acc.sum / float64(acc.count)
		points := gradescale.ScoreToGradePoints(avg)
		pointsSum += points
		subjects = append(subjects, models.SubjectGPA{
			Subject:      subject,
			AverageScore: round2(avg),
			GradePoints:  points,
			LetterGrade:  gradescale.ScoreToLetterGrade(avg),
			Assessments:  acc.count,
		})
	}

	gpa := pointsSum / float64(len(subjects))
	return &models.WeightedGPAResult{
		GPA:         round2(gpa),
		LetterGrade: gradescale.GPAToLetterGrade(gpa),
		Subjects:    subjects,
	}
}

func subjectStats(grades []models.Grade) []models.SubjectStats {
	type acc struct {
		sum      float64
		count    int
		min, max float64
	}
	bySubject := map[string]*acc{}
	var order []string
	for _, grade := range grades {
		a, ok := bySubject[grade.Subject]
		if !ok {
			a = &acc{min: grade.Score, max: grade.Score}
			bySubject[grade.Subject] = a
			order = append(order, grade.Subject)
		}
		a.sum += grade.Score
		a.count++
		if grade.Score < a.min {
			a.min = grade.Score
		}
		if grade.Score > a.max {
			a.max = grade.Score
		}
	}
	sort.Strings(order)

	stats := make([]models.SubjectStats, 0, len(order))
	for _, subject := range order {
		a := bySubject[subject]
		avg := a.sum / float64(a.count)
		stats = append(stats, models.SubjectStats{
			Subject:      subject,
			AverageScore: round2(avg),
			LetterGrade:  gradescale.ScoreToLetterGrade(avg),
			Count:        a.count,
			MinScore:     a.min,
			MaxScore:     a.max,
		})
	}
	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
