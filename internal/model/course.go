package model

import (
	"fmt"
	"time"
)

// Course represents a degree program (e.g. BSIT).
type Course struct {
	ID          int       `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Section is a class group within a course year. Its human key is
// COURSE-YEAR-NUMBER, e.g. "BSIT-3-1".
type Section struct {
	ID         int       `json:"id"`
	CourseID   int       `json:"course_id"`
	CourseCode string    `json:"course_code"`
	Year       int       `json:"year"`
	Number     int       `json:"number"`
	Subjects   []string  `json:"subjects"`
	CreatedAt  time.Time `json:"created_at"`
}

// Key renders the section's COURSE-YEAR-SECTION identifier.
func (s Section) Key() string {
	return fmt.Sprintf("%s-%d-%d", s.CourseCode, s.Year, s.Number)
}

// CreateCourseRequest is the payload for creating a course.
type CreateCourseRequest struct {
	Code        string `json:"code" binding:"required,alphanum,min=2,max=16"`
	Name        string `json:"name" binding:"required,min=2,max=120"`
	Description string `json:"description" binding:"max=500"`
}

// CreateSectionRequest adds a new section to a course year. The section
// number is assigned sequentially.
type CreateSectionRequest struct {
	CourseCode string `json:"course_code" binding:"required,alphanum,min=2,max=16"`
	Year       int    `json:"year" binding:"required,min=1,max=4"`
}

// AddSubjectRequest attaches a subject to a section or to every section of
// a course year when SectionNumber is zero.
type AddSubjectRequest struct {
	CourseCode    string `json:"course_code" binding:"required,alphanum,min=2,max=16"`
	Year          int    `json:"year" binding:"required,min=1,max=4"`
	SectionNumber int    `json:"section_number" binding:"min=0"`
	Subject       string `json:"subject" binding:"required,min=2,max=120"`
}
