package models

import "time"

// Grade represents a single recorded assessment score. Grades are immutable
// once created; there is no update or delete path.
type Grade struct {
	ID             string    `db:"id" json:"id"`
	StudentID      string    `db:"student_id" json:"studentId"`
	Subject        string    `db:"subject" json:"subject"`
	Score          float64   `db:"score" json:"score"`
	Weight         float64   `db:"weight" json:"weight"`
	AssessmentType string    `db:"assessment_type" json:"assessmentType"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`

	// Derived at creation time, not persisted.
	LetterGrade string  `db:"-" json:"letterGrade,omitempty"`
	GradePoints float64 `db:"-" json:"gradePoints,omitempty"`
}

// GradeFilter narrows grade listings.
type GradeFilter struct {
	StudentID string
	Subject   string
}

// GPAResult is the simple grade-point average for a student.
type GPAResult struct {
	GPA              float64 `json:"gpa"`
	LetterGrade      string  `json:"letterGrade"`
	AverageScore     float64 `json:"averageScore"`
	TotalAssessments int     `json:"totalAssessments"`
}

// SubjectGPA is one subject's contribution to the weighted GPA.
type SubjectGPA struct {
	Subject      string  `json:"subject"`
	AverageScore float64 `json:"averageScore"`
	GradePoints  float64 `json:"gradePoints"`
	LetterGrade  string  `json:"letterGrade"`
	Assessments  int     `json:"assessments"`
}

// WeightedGPAResult averages per-subject grade points, each subject counting
// equally regardless of how many assessments it holds.
type WeightedGPAResult struct {
	GPA         float64      `json:"gpa"`
	LetterGrade string       `json:"letterGrade"`
	Subjects    []SubjectGPA `json:"subjects"`
}

// SubjectStats summarises raw scores within one subject.
type SubjectStats struct {
	Subject      string  `json:"subject"`
	AverageScore float64 `json:"averageScore"`
	LetterGrade  string  `json:"letterGrade"`
	Count        int     `json:"count"`
	MinScore     float64 `json:"minScore"`
	MaxScore     float64 `json:"maxScore"`
}

// AcademicSummary composes the full per-student academic view.
type AcademicSummary struct {
	StudentID    string            `json:"studentId"`
	Grades       []Grade           `json:"grades"`
	Subjects     []SubjectStats    `json:"subjects"`
	WeightedGPA  WeightedGPAResult `json:"weightedGPA"`
	RecentGrades []Grade           `json:"recentGrades"`
}
