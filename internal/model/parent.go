package model

import "time"

// Parent represents a parent/guardian account holder.
type Parent struct {
	ID         int       `json:"id"`
	RegistryNo string    `json:"registry_no"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Status     string    `json:"status"`
	StudentIDs []int     `json:"student_ids"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateParentRequest creates a parent record. When Password is empty a
// temporary one is generated from the registry number.
type CreateParentRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=120"`
	Email      string `json:"email" binding:"required,email,max=255"`
	Phone      string `json:"phone" binding:"required,min=3,max=40"`
	StudentIDs []int  `json:"student_ids" binding:"required,min=1,dive,min=1"`
	Password   string `json:"password" binding:"omitempty,acadpassword,max=128"`
}

// UpdateParentRequest updates a parent; empty fields are left unchanged.
type UpdateParentRequest struct {
	Name  string `json:"name" binding:"omitempty,min=2,max=120"`
	Email string `json:"email" binding:"omitempty,email,max=255"`
	Phone string `json:"phone" binding:"omitempty,min=3,max=40"`
}

// LinkStudentRequest links one student to a parent account.
type LinkStudentRequest struct {
	StudentID int `json:"student_id" binding:"required,min=1"`
}
