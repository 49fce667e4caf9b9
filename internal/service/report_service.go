package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	appErrors "github.com/KhobaitUddinSimran/Student-Management-System/pkg/errors"
	"github.com/KhobaitUddinSimran/Student-Management-System/pkg/export"
)

// ReportService renders exportable documents from the academic data.
type ReportService struct {
	grades     *GradeService
	attendance *AttendanceService
	users      gradeUserRepository
	pdf        *export.PDFExporter
	csv        *export.CSVExporter
	logger     *zap.Logger
}

// NewReportService constructs a ReportService instance.
func NewReportService(grades *GradeService, attendance *AttendanceService, users gradeUserRepository, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		grades:     grades,
		attendance: attendance,
		users:      users,
		pdf:        export.NewPDFExporter(),
		csv:        export.NewCSVExporter(),
		logger:     logger,
	}
}

// ReportCardPDF renders one student's report card: a summary block with GPA
// and attendance rate above the per-subject table.
func (s *ReportService) ReportCardPDF(ctx context.Context, studentID string) ([]byte, error) {
	student, err := s.users.FindByID(ctx, studentID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	summary, err := s.grades.AcademicSummary(ctx, studentID)
	if err != nil {
		return nil, err
	}

	stats, err := s.attendance.StudentStats(ctx, studentID)
	if err != nil {
		return nil, err
	}

	data := export.Dataset{
		Headers: []string{"Subject", "Average", "Letter", "Assessments"},
	}
	for _, subject := range summary.Subjects {
		data.Rows = append(data.Rows, map[string]string{
			"Subject":     subject.Subject,
			"Average":     fmt.Sprintf("%.2f", subject.AverageScore),
			"Letter":      subject.LetterGrade,
			"Assessments": fmt.Sprintf("%d", subject.Count),
		})
	}

	lines := []export.SummaryLine{
		{Label: "Student", Value: student.Name},
		{Label: "GPA", Value: fmt.Sprintf("%.2f (%s)", summary.WeightedGPA.GPA, summary.WeightedGPA.LetterGrade)},
		{Label: "Attendance", Value: stats.AttendancePercentage + "%"},
	}

	payload, err := s.pdf.Render(data, "Report Card", lines)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report card")
	}
	return payload, nil
}

// AttendanceCSV exports one day's attendance records.
func (s *ReportService) AttendanceCSV(ctx context.Context, date string) ([]byte, error) {
	records, err := s.attendance.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	data := export.Dataset{
		Headers: []string{"Student", "Date", "Status", "MarkedBy"},
	}
	for _, record := range records {
		data.Rows = append(data.Rows, map[string]string{
			"Student":  record.StudentName,
			"Date":     record.Date,
			"Status":   string(record.Status),
			"MarkedBy": record.MarkedBy,
		})
	}

	payload, err := s.csv.Render(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render attendance export")
	}
	return payload, nil
}

// GradesCSV exports a student's grade history.
func (s *ReportService) GradesCSV(ctx context.Context, studentID string) ([]byte, error) {
	grades, err := s.grades.ListGrades(ctx, studentID)
	if err != nil {
		return nil, err
	}

	data := export.Dataset{
		Headers: []string{"Subject", "Score", "Letter", "Type", "RecordedAt"},
	}
	for _, grade := range grades {
		data.Rows = append(data.Rows, map[string]string{
			"Subject":    grade.Subject,
			"Score":      fmt.Sprintf("%.2f", grade.Score),
			"Letter":     grade.LetterGrade,
			"Type":       grade.AssessmentType,
			"RecordedAt": grade.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	payload, err := s.csv.Render(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render grade export")
	}
	return payload, nil
}
