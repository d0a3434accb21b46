package model

import "time"

// Teacher represents a faculty member.
type Teacher struct {
	ID             int       `json:"id"`
	RegistryNo     string    `json:"registry_no"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Qualifications []string  `json:"qualifications"`
	Subjects       []string  `json:"subjects"`
	Sections       []string  `json:"sections"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateTeacherRequest is the payload for creating a teacher record.
type CreateTeacherRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=120"`
	Email string `json:"email" binding:"required,email,max=255"`
	Phone string `json:"phone" binding:"required,min=3,max=40"`
}

// UpdateTeacherRequest updates a teacher; empty fields are left unchanged.
type UpdateTeacherRequest struct {
	Name  string `json:"name" binding:"omitempty,min=2,max=120"`
	Email string `json:"email" binding:"omitempty,email,max=255"`
	Phone string `json:"phone" binding:"omitempty,min=3,max=40"`
}

// AddQualificationRequest appends a qualification to a teacher.
type AddQualificationRequest struct {
	Qualification string `json:"qualification" binding:"required,min=2,max=200"`
}

// AddTaughtSubjectRequest appends a subject to a teacher's teaching load.
type AddTaughtSubjectRequest struct {
	Subject string `json:"subject" binding:"required,min=2,max=120"`
}

// AssignSectionRequest assigns a teacher to a section.
type AssignSectionRequest struct {
	Section string `json:"section" binding:"required,section"`
}
