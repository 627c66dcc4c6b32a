package middleware

import (
	"net/http"

	"job_portal/internal/model"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware creates a middleware to check for specific account types
func RoleMiddleware(allowedTypes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		typeVal, exists := c.Get(AuthTypeKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account type not resolved, ensure JWT middleware runs first"})
			return
		}

		userType, ok := typeVal.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid account type in context"})
			return
		}

		for _, allowed := range allowedTypes {
			if userType == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
	}
}

// ApplicantMiddleware restricts a route to applicants
func ApplicantMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.TypeApplicant)
}

// RecruiterMiddleware restricts a route to recruiters
func RecruiterMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.TypeRecruiter)
}

// AdminMiddleware restricts a route to administrators
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.TypeAdmin)
}
