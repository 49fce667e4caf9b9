package models

// Class groups students under an optional homeroom teacher.
type Class struct {
	ID                string  `db:"id" json:"id"`
	Name              string  `db:"name" json:"name"`
	GradeLevel        int     `db:"grade_level" json:"gradeLevel"`
	HomeroomTeacherID *string `db:"homeroom_teacher_id" json:"homeroomTeacherId,omitempty"`
	TeacherName       *string `db:"teacher_name" json:"teacherName,omitempty"`
}

// Subject is a taught discipline. Grade rows reference subjects by free-text
// name, not by this entity.
type Subject struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// ClassSubject assigns a subject to a class with exactly one teacher. The
// (class_id, subject_id) pair is unique.
type ClassSubject struct {
	ID          string  `db:"id" json:"id"`
	ClassID     string  `db:"class_id" json:"classId"`
	SubjectID   string  `db:"subject_id" json:"subjectId"`
	TeacherID   string  `db:"teacher_id" json:"teacherId"`
	SubjectName *string `db:"subject_name" json:"subjectName,omitempty"`
	TeacherName *string `db:"teacher_name" json:"teacherName,omitempty"`
}

// ClassStudent is the roster projection of an enrolled student.
type ClassStudent struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}
