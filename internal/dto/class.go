package dto

// CreateClassRequest creates a class.
type CreateClassRequest struct {
	Name              string  `json:"name" validate:"required,min=1,max=100"`
	GradeLevel        int     `json:"gradeLevel" validate:"required,gte=1,lte=12"`
	HomeroomTeacherID *string `json:"homeroomTeacherId,omitempty"`
}

// CreateSubjectRequest creates a subject.
type CreateSubjectRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// EnrollStudentRequest adds a student to a class roster.
type EnrollStudentRequest struct {
	StudentID string `json:"studentId" validate:"required"`
}

// AssignSubjectRequest binds a subject and teacher to a class.
type AssignSubjectRequest struct {
	SubjectID string `json:"subjectId" validate:"required"`
	TeacherID string `json:"teacherId" validate:"required"`
}
