package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"

	// User permissions
	PermissionTransactionRead  = "transaction:read"
	PermissionTransactionWrite = "transaction:write"
	PermissionAlertRead        = "alert:read"
	PermissionTicketWrite      = "ticket:write"
	PermissionChangePassword   = "user:change-password"

	// Support staff permissions
	PermissionTicketManage = "ticket:manage"
	PermissionAlertManage  = "alert:manage"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint     `json:"user_id"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case "admin":
		return []string{
			PermissionTransactionRead,
			PermissionTransactionWrite,
			PermissionAlertRead,
			PermissionAlertManage,
			PermissionTicketWrite,
			PermissionTicketManage,
			PermissionChangePassword,
			PermissionReadAdmin,
			PermissionWriteAdmin,
		}
	case "support":
		return []string{
			PermissionTransactionRead,
			PermissionAlertRead,
			PermissionTicketWrite,
			PermissionTicketManage,
			PermissionChangePassword,
		}
	case "user":
		return []string{
			PermissionTransactionRead,
			PermissionTransactionWrite,
			PermissionAlertRead,
			PermissionTicketWrite,
			PermissionChangePassword,
		}
	default:
		return []string{}
	}
}
