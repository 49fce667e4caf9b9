package dto

// CreateGradeRequest is the payload for recording a grade.
type CreateGradeRequest struct {
	StudentID      string  `json:"studentId" validate:"required"`
	Subject        string  `json:"subject" validate:"required,min=1,max=100"`
	Score          float64 `json:"score" validate:"gte=0,lte=100"`
	Weight         float64 `json:"weight" validate:"omitempty,gt=0"`
	AssessmentType string  `json:"assessmentType" validate:"omitempty,oneof=EXAM QUIZ HOMEWORK PROJECT"`
}
