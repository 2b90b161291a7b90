package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yarotech/pos-api/internal/domain/entity"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	email, exists := c.Get("user_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// GetUserRoles extracts the user roles from the Gin context
func GetUserRoles(c *gin.Context) []string {
	roles, exists := c.Get("user_roles")
	if !exists {
		return nil
	}
	userRoles, ok := roles.([]string)
	if !ok {
		return nil
	}
	return userRoles
}

// HasRole checks if the authenticated user has a specific role
func HasRole(c *gin.Context, role string) bool {
	for _, r := range GetUserRoles(c) {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin checks if the user has the admin role
func IsAdmin(c *gin.Context) bool {
	return HasRole(c, entity.RoleAdmin)
}

// IsAuditor checks if the user may see every user's sales, not just their
// own. Admins and moderators both have the audit view.
func IsAuditor(c *gin.Context) bool {
	return HasRole(c, entity.RoleAdmin) || HasRole(c, entity.RoleModerator)
}
