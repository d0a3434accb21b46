package model

import "time"

// PortalRole identifies which kind of person owns a portal account.
type PortalRole string

const (
	PortalRoleStudent PortalRole = "student"
	PortalRoleTeacher PortalRole = "teacher"
	PortalRoleParent  PortalRole = "parent"
)

// Valid reports whether the role is one of the known portal roles.
func (r PortalRole) Valid() bool {
	switch r {
	case PortalRoleStudent, PortalRoleTeacher, PortalRoleParent:
		return true
	}
	return false
}

// PortalAccount is a self-service login bound to an existing registry record.
type PortalAccount struct {
	ID           int        `json:"id"`
	Role         PortalRole `json:"role"`
	PersonID     int        `json:"person_id"`
	RegistryNo   string     `json:"registry_no"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// PortalRegisterRequest creates a portal account for an existing person.
type PortalRegisterRequest struct {
	Role       PortalRole `json:"role" binding:"required,oneof=student teacher parent"`
	RegistryNo string     `json:"registry_no" binding:"required,len=10"`
	Password   string     `json:"password" binding:"required,acadpassword,max=128"`
}

// PortalLoginRequest authenticates a portal user by registry number.
type PortalLoginRequest struct {
	Role       PortalRole `json:"role" binding:"required,oneof=student teacher parent"`
	RegistryNo string     `json:"registry_no" binding:"required,len=10"`
	Password   string     `json:"password" binding:"required,min=6,max=128"`
}

// PortalLoginResponse is returned after successful portal login.
type PortalLoginResponse struct {
	Token   string        `json:"token"`
	Account PortalAccount `json:"account"`
	Name    string        `json:"name"`
}
