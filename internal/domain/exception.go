package domain

import "time"

type ExceptionType string

const (
	ExceptionOverload     ExceptionType = "OVERLOAD"
	ExceptionPrerequisite ExceptionType = "PREREQUISITE_WAIVER"
	ExceptionTimeConflict ExceptionType = "TIME_CONFLICT"
)

const (
	ExceptionStatusPending  = "PENDING"
	ExceptionStatusApproved = "APPROVED"
	ExceptionStatusRejected = "REJECTED"
)

type ExceptionRequest struct {
	ID            int           `db:"id" json:"id"`
	StudentID     int           `db:"student_id" json:"student_id"`
	SectionID     int           `db:"section_id" json:"section_id"`
	Type          ExceptionType `db:"type" json:"type"`
	Reason        string        `db:"reason" json:"reason"`
	AttachmentKey *string       `db:"attachment_key" json:"attachment_key"`
	Status        string        `db:"status" json:"status"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}

type CreateExceptionRequest struct {
	SectionID int           `form:"section_id" json:"section_id" validate:"required,gt=0"`
	Type      ExceptionType `form:"type" json:"type" validate:"required,oneof=OVERLOAD PREREQUISITE_WAIVER TIME_CONFLICT"`
	Reason    string        `form:"reason" json:"reason" validate:"required,min=10,max=2000"`
}
