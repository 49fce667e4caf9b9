package dto

// SendNotificationRequest targets a single recipient.
type SendNotificationRequest struct {
	UserID  string  `json:"userId" validate:"required"`
	Title   *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Message string  `json:"message" validate:"required,min=1,max=1000"`
	Type    string  `json:"type" validate:"omitempty,oneof=ATTENDANCE GRADE ANNOUNCEMENT SYSTEM GENERAL"`
}

// AnnouncementRequest broadcasts to every user of a role, or to everyone when
// the role is empty.
type AnnouncementRequest struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Message string  `json:"message" validate:"required,min=1,max=1000"`
	Role    string  `json:"role" validate:"omitempty,oneof=ADMIN TEACHER STUDENT PARENT"`
}

// AnnouncementResult reports the broadcast outcome.
type AnnouncementResult struct {
	Recipients int `json:"recipients"`
	Delivered  int `json:"delivered"`
}
