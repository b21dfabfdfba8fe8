package domain

import "time"

type EnrollmentStatus string

const (
	StatusRegistered EnrollmentStatus = "REGISTERED"
	StatusCompleted  EnrollmentStatus = "COMPLETED"
	StatusFailed     EnrollmentStatus = "FAILED"
	StatusWaiting    EnrollmentStatus = "WAITING"
)

type Enrollment struct {
	ID        int              `db:"id" json:"id"`
	StudentID int              `db:"student_id" json:"student_id"`
	SectionID int              `db:"section_id" json:"section_id"`
	Status    EnrollmentStatus `db:"status" json:"status"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}

type EnrollmentWithSection struct {
	Enrollment
	CourseCode string  `json:"course_code"`
	CourseName string  `json:"course_name"`
	Credits    int     `json:"credits"`
	Schedule   *string `json:"schedule"`
}

// EnrollmentInsert is one row of a plan commit.
type EnrollmentInsert struct {
	StudentID int              `json:"student_id"`
	SectionID int              `json:"section_id"`
	Status    EnrollmentStatus `json:"status"`
}

type RegisterSectionRequest struct {
	SectionID int `json:"section_id" validate:"required,gt=0"`
}

type CommitPlanRequest struct {
	SectionIDs []int `json:"section_ids" validate:"required,min=1,dive,gt=0"`
}
