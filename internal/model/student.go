package model

import "time"

// EnrollmentStatus is the student's standing with the college.
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentInactive  EnrollmentStatus = "inactive"
	EnrollmentGraduated EnrollmentStatus = "graduated"
	EnrollmentDropped   EnrollmentStatus = "dropped"
)

// Student represents an enrolled student.
type Student struct {
	ID         int              `json:"id"`
	RegistryNo string           `json:"registry_no"`
	Name       string           `json:"name"`
	Contact    string           `json:"contact"`
	SectionID  int              `json:"section_id"`
	SectionKey string           `json:"section"`
	Status     EnrollmentStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// CreateStudentRequest is the payload for creating a new student record.
type CreateStudentRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=120"`
	Contact string `json:"contact" binding:"required,min=3,max=120"`
	Section string `json:"section" binding:"required,section"`
}

// UpdateStudentRequest is the payload for updating a student. Empty fields
// are left unchanged.
type UpdateStudentRequest struct {
	Name    string           `json:"name" binding:"omitempty,min=2,max=120"`
	Contact string           `json:"contact" binding:"omitempty,min=3,max=120"`
	Section string           `json:"section" binding:"omitempty,section"`
	Status  EnrollmentStatus `json:"status" binding:"omitempty,oneof=active inactive graduated dropped"`
}
