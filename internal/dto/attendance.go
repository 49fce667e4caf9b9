package dto

// MarkAttendanceRequest records one student's status for a date.
type MarkAttendanceRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Status    string `json:"status" validate:"required,oneof=PRESENT ABSENT LATE"`
}

// BulkAttendanceRequest marks a whole roster for one date.
type BulkAttendanceRequest struct {
	Date    string               `json:"date" validate:"required,datetime=2006-01-02"`
	Records []BulkAttendanceItem `json:"records" validate:"required,min=1,dive"`
}

// BulkAttendanceItem is one roster entry inside a bulk request.
type BulkAttendanceItem struct {
	StudentID string `json:"studentId" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=PRESENT ABSENT LATE"`
}

// BulkAttendanceResult reports the per-item outcome of a bulk mark.
type BulkAttendanceResult struct {
	Marked int                  `json:"marked"`
	Failed []BulkAttendanceFail `json:"failed,omitempty"`
}

// BulkAttendanceFail names one roster entry that could not be stored.
type BulkAttendanceFail struct {
	StudentID string `json:"studentId"`
	Reason    string `json:"reason"`
}

// NotifyAbsencesRequest triggers the parent fan-out for a date.
type NotifyAbsencesRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// NotifyAbsencesResult reports how many parents were reached.
type NotifyAbsencesResult struct {
	AbsentStudents  int `json:"absentStudents"`
	ParentsNotified int `json:"parentsNotified"`
	WithoutParent   int `json:"withoutParent"`
}
