package handler

import (
	"errors"
	"log"
	"net/http"

	"job_portal/internal/middleware"
	"job_portal/internal/model"
	"job_portal/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler exposes the role profile linked to the authenticated user
type ProfileHandler struct {
	service service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(s service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: s}
}

// Helper to get authenticated user ID from context
func getAuthUserID(c *gin.Context) (int, error) {
	userIDVal, exists := c.Get(middleware.AuthUserKey)
	if !exists {
		return 0, errors.New("user ID not found in context")
	}
	userID, ok := userIDVal.(int)
	if !ok {
		return 0, errors.New("invalid user ID type in context")
	}
	return userID, nil
}

// Helper to get authenticated account type from context
func getAuthUserType(c *gin.Context) (string, error) {
	typeVal, exists := c.Get(middleware.AuthTypeKey)
	if !exists {
		return "", errors.New("account type not found in context")
	}
	userType, ok := typeVal.(string)
	if !ok {
		return "", errors.New("invalid account type in context")
	}
	return userType, nil
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	userType, err := getAuthUserType(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.service.Get(c.Request.Context(), userID, userType)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error getting profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	userType, err := getAuthUserType(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var (
		profile interface{}
	)
	switch userType {
	case model.TypeApplicant:
		var req model.UpdateApplicantProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		profile, err = h.service.UpdateApplicant(c.Request.Context(), userID, req)
	case model.TypeRecruiter:
		var req model.UpdateRecruiterProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		profile, err = h.service.UpdateRecruiter(c.Request.Context(), userID, req)
	case model.TypeAdmin:
		var req model.UpdateAdminProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		profile, err = h.service.UpdateAdmin(c.Request.Context(), userID, req)
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "Unknown account type"})
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidContactNumber):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("Error updating profile: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		}
		return
	}
	c.JSON(http.StatusOK, profile)
}

// RegisterProfileRoutes registers profile routes
func (h *ProfileHandler) RegisterProfileRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	profileGroup := rg.Group("/profile")
	profileGroup.Use(authMW)
	{
		profileGroup.GET("", h.GetProfile)
		profileGroup.PUT("", h.UpdateProfile)
	}
}
