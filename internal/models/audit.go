package models

import "time"

// Audit actions recorded for records mutations and account events.
const (
	ActionDepartmentAdd    = "department_add"
	ActionDepartmentRemove = "department_remove"
	ActionPatientAdd       = "patient_add"
	ActionStaffAdd         = "staff_add"
	ActionUserLogin        = "user_login"
	ActionUserRegister     = "user_register"
)

// AuditLog is one entry of the activity trail.
type AuditLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     *uint     `gorm:"index" json:"user_id"`
	Action     string    `gorm:"size:100;not null;index" json:"action"`
	Department string    `gorm:"size:255;index" json:"department,omitempty"`
	Details    string    `gorm:"type:text" json:"details"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}
