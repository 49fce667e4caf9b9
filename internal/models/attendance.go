package models

import "time"

// AttendanceStatus is the closed set of daily attendance states.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "PRESENT"
	StatusAbsent  AttendanceStatus = "ABSENT"
	StatusLate    AttendanceStatus = "LATE"
)

// Valid reports whether the status belongs to the closed set.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate:
		return true
	}
	return false
}

// Attendance is one student's record for one calendar day. The
// (student_id, date) pair is unique; marking twice replaces the status.
type Attendance struct {
	ID        string           `db:"id" json:"id"`
	StudentID string           `db:"student_id" json:"studentId"`
	Date      string           `db:"date" json:"date"`
	Status    AttendanceStatus `db:"status" json:"status"`
	MarkedBy  string           `db:"marked_by" json:"markedBy"`
	CreatedAt time.Time        `db:"created_at" json:"createdAt"`
}

// AttendanceRecord joins the student name for per-date listings.
type AttendanceRecord struct {
	Attendance
	StudentName string `db:"student_name" json:"studentName"`
}

// AttendanceStats aggregates a student's history by status.
type AttendanceStats struct {
	TotalDays            int    `db:"total_days" json:"totalDays"`
	PresentDays          int    `db:"present_days" json:"presentDays"`
	AbsentDays           int    `db:"absent_days" json:"absentDays"`
	LateDays             int    `db:"late_days" json:"lateDays"`
	AttendancePercentage string `db:"-" json:"attendancePercentage"`
}

// ClassAttendanceStats aggregates all records of a class roster.
type ClassAttendanceStats struct {
	TotalRecords      int    `db:"total_records" json:"totalRecords"`
	Present           int    `db:"present" json:"present"`
	Absent            int    `db:"absent" json:"absent"`
	Late              int    `db:"late" json:"late"`
	PresentPercentage string `db:"-" json:"presentPercentage"`
}

// AttendanceTrend is one calendar day inside a trailing trend window.
type AttendanceTrend struct {
	Date              string `db:"date" json:"date"`
	Total             int    `db:"total" json:"total"`
	Present           int    `db:"present" json:"present"`
	Absent            int    `db:"absent" json:"absent"`
	Late              int    `db:"late" json:"late"`
	PresentPercentage string `db:"-" json:"presentPercentage"`
}

// AbsentStudent pairs an ABSENT record with the student's parent link, used
// by the absence-notification fan-out. ParentID is nil for unlinked students.
type AbsentStudent struct {
	StudentID   string  `db:"student_id" json:"studentId"`
	StudentName string  `db:"student_name" json:"studentName"`
	Date        string  `db:"date" json:"date"`
	ParentID    *string `db:"parent_id" json:"parentId,omitempty"`
}
