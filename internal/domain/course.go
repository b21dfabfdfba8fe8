package domain

import "time"

type Course struct {
	Code          string    `db:"code" json:"code"`
	NameEn        string    `db:"name_en" json:"name_en"`
	NameAr        string    `db:"name_ar" json:"name_ar"`
	Credits       int       `db:"credits" json:"credits"`
	Category      string    `db:"category" json:"category"`
	Prerequisites []string  `db:"prerequisites" json:"prerequisites"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type Term struct {
	ID       int    `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	IsActive bool   `db:"is_active" json:"is_active"`
}

type Section struct {
	ID         int     `db:"id" json:"id"`
	CourseCode string  `db:"course_code" json:"course_code"`
	TermID     int     `db:"term_id" json:"term_id"`
	Schedule   *string `db:"schedule" json:"schedule"`
	Instructor *string `db:"instructor" json:"instructor"`
	Capacity   int     `db:"capacity" json:"capacity"`
	Enrolled   int     `db:"enrolled" json:"enrolled"`
	IsOpen     bool    `db:"is_open" json:"is_open"`
}

// Full reports whether every seat is taken. A capacity of zero means uncapped.
func (s Section) Full() bool {
	return s.Capacity > 0 && s.Enrolled >= s.Capacity
}

// Composite types for API responses

// OpenSection is a section of the active term together with its course record.
type OpenSection struct {
	Section
	Course Course `json:"course"`
}

// ScheduleText returns the free-form schedule, or "" when absent.
func (s OpenSection) ScheduleText() string {
	if s.Schedule == nil {
		return ""
	}
	return *s.Schedule
}

// Code is the course code, taken from the nested course when loaded.
func (s OpenSection) Code() string {
	if s.Course.Code != "" {
		return s.Course.Code
	}
	return s.CourseCode
}

type CourseWithSections struct {
	Course
	Sections []Section `json:"sections"`
}
