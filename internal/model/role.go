package model

import "time"

// Role represents an RBAC role for administrators.
type Role struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// RoleWithPermissions extends Role to include its associated permissions.
type RoleWithPermissions struct {
	*Role
	Permissions []string `json:"permissions"`
}

// CreateRoleRequest creates a role carrying a set of permission codes.
type CreateRoleRequest struct {
	Name        string   `json:"name" binding:"required,min=3,max=60"`
	Permissions []string `json:"permissions" binding:"required,min=1,dive,min=3"`
}
