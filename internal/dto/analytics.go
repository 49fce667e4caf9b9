package dto

import "github.com/KhobaitUddinSimran/Student-Management-System/internal/models"

// UserStats breaks the user base down by role for the dashboard.
type UserStats struct {
	Total    int `json:"total"`
	Admins   int `json:"admins"`
	Teachers int `json:"teachers"`
	Students int `json:"students"`
	Parents  int `json:"parents"`
}

// AttendanceOverview is the dashboard attendance block.
type AttendanceOverview struct {
	TotalRecords      int    `json:"totalRecords"`
	Present           int    `json:"present"`
	Absent            int    `json:"absent"`
	Late              int    `json:"late"`
	PresentPercentage string `json:"presentPercentage"`
}

// DistributionEntry is one bucket of the grade distribution with its share.
type DistributionEntry struct {
	Bucket     string `json:"bucket"`
	Count      int    `json:"count"`
	Percentage string `json:"percentage"`
}

// TopStudent is one ranked row of the top students list.
type TopStudent struct {
	Rank         int    `json:"rank"`
	StudentID    string `json:"studentId"`
	Name         string `json:"name"`
	AverageScore string `json:"averageScore"`
	LetterGrade  string `json:"letterGrade"`
	GradeCount   int    `json:"gradeCount"`
}

// AtRiskStudent is one flagged row of the at-risk report.
type AtRiskStudent struct {
	StudentID    string   `json:"studentId"`
	Name         string   `json:"name"`
	AverageScore string   `json:"averageScore"`
	Absences     int      `json:"absences"`
	Issues       []string `json:"issues"`
}

// Dashboard composes the admin dashboard payload.
type Dashboard struct {
	Users             UserStats            `json:"users"`
	Classes           int                  `json:"classes"`
	Attendance        AttendanceOverview   `json:"attendance"`
	GradeDistribution []DistributionEntry  `json:"gradeDistribution"`
	TopStudents       []TopStudent         `json:"topStudents"`
	AtRiskStudents    []AtRiskStudent      `json:"atRiskStudents"`
	System            models.SystemMetrics `json:"system"`
}

// ClassAnalytics composes the per-class view.
type ClassAnalytics struct {
	ClassID           string                      `json:"classId"`
	ClassName         string                      `json:"className"`
	Students          int                         `json:"students"`
	GradeDistribution []DistributionEntry         `json:"gradeDistribution"`
	Attendance        models.ClassAttendanceStats `json:"attendance"`
}

// TeacherAnalytics composes the per-teacher view.
type TeacherAnalytics struct {
	TeacherID string           `json:"teacherId"`
	Classes   []ClassAnalytics `json:"classes"`
}
