package model

import "time"

// Admin represents an administrator account.
type Admin struct {
	ID           int       `json:"id"`
	RegistryNo   string    `json:"registry_no"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	RoleID       int       `json:"role_id"`
	RoleName     string    `json:"role_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SecurityQuestion is one of the three recovery questions attached to an
// admin account. Answers are stored bcrypt-hashed over the lowercased text.
type SecurityQuestion struct {
	ID         int    `json:"id"`
	AdminID    int    `json:"-"`
	Question   string `json:"question"`
	AnswerHash string `json:"-"`
}

// SecurityQuestionInput pairs a recovery question with its plaintext
// answer, supplied when provisioning an admin.
type SecurityQuestionInput struct {
	Question string `json:"question" binding:"required,min=5,max=200"`
	Answer   string `json:"answer" binding:"required,min=2,max=120"`
}

// CreateAdminRequest provisions an admin account with three recovery
// questions.
type CreateAdminRequest struct {
	Username  string                  `json:"username" binding:"required,min=3,max=100"`
	Password  string                  `json:"password" binding:"required,acadpassword,max=128"`
	RoleID    int                     `json:"role_id" binding:"required,min=1"`
	Questions []SecurityQuestionInput `json:"questions" binding:"required,len=3,dive"`
}

// AdminLoginRequest is the payload for admin authentication.
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// AdminLoginResponse is returned after successful admin login.
type AdminLoginResponse struct {
	Token       string   `json:"token"`
	Admin       Admin    `json:"admin"`
	Permissions []string `json:"permissions"`
}

// AdminRecoverRequest resets an admin password after answering all three
// security questions correctly.
type AdminRecoverRequest struct {
	Username    string   `json:"username" binding:"required,min=3,max=100"`
	Answers     []string `json:"answers" binding:"required,len=3,dive,required,min=2"`
	NewPassword string   `json:"new_password" binding:"required,acadpassword,max=128"`
}

// ChangePasswordRequest changes a password after verifying the current one.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required,max=128"`
	NewPassword string `json:"new_password" binding:"required,acadpassword,max=128"`
}
