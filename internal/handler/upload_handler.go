package handler

import (
	"errors"
	"log"
	"net/http"

	"job_portal/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadHandler handles resume and profile image uploads
type UploadHandler struct {
	service service.UploadService
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(s service.UploadService) *UploadHandler {
	return &UploadHandler{service: s}
}

func (h *UploadHandler) UploadResume(c *gin.Context) {
	h.upload(c, service.CategoryResume, "Resume uploaded successfully")
}

func (h *UploadHandler) UploadProfile(c *gin.Context) {
	h.upload(c, service.CategoryProfile, "Profile image uploaded successfully")
}

func (h *UploadHandler) upload(c *gin.Context, category service.UploadCategory, successMessage string) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		// MaxBytesReader trips while the multipart body is being parsed
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "File size exceeds the 10MB limit"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		return
	}

	url, err := h.service.SaveFile(category, fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidFileFormat):
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Invalid file format for this upload category",
				"debug": gin.H{
					"mimetype":     fileHeader.Header.Get("Content-Type"),
					"originalname": fileHeader.Filename,
				},
			})
		case errors.Is(err, service.ErrFileSizeExceeded):
			c.JSON(http.StatusBadRequest, gin.H{"message": "File size exceeds the 10MB limit"})
		default:
			log.Printf("Error saving %s upload: %v", category, err)
			resp := gin.H{"message": "Error saving file to disk"}
			if gin.Mode() != gin.ReleaseMode {
				resp["error"] = err.Error()
			}
			c.JSON(http.StatusInternalServerError, resp)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": successMessage,
		"url":     url,
	})
}

// RegisterUploadRoutes registers upload routes
func (h *UploadHandler) RegisterUploadRoutes(rg *gin.RouterGroup, sizeLimitMW gin.HandlerFunc) {
	uploadGroup := rg.Group("/upload")
	uploadGroup.Use(sizeLimitMW)
	{
		uploadGroup.POST("/resume", h.UploadResume)
		uploadGroup.POST("/profile", h.UploadProfile)
	}
}
