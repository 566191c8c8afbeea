package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProfileStore is the repository surface the profile handlers need.
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.CultureProfile, error)
	Create(ctx context.Context, profile *model.CultureProfile) error
	Update(ctx context.Context, profile *model.CultureProfile) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type ProfileHandler struct {
	repo ProfileStore
}

func NewProfileHandler(repo ProfileStore) *ProfileHandler {
	return &ProfileHandler{repo: repo}
}

type profileRequest struct {
	CulturalPreferences model.CulturalPreferences `json:"culturalPreferences" binding:"required"`
}

type patchProfileRequest struct {
	CulturalPreferences struct {
		Language           *string                   `json:"language"`
		Region             *string                   `json:"region"`
		ColorPreferences   *[]string                 `json:"colorPreferences"`
		AvoidColors        *[]string                 `json:"avoidColors"`
		SymbolStyle        *string                   `json:"symbolStyle"`
		CulturalContext    *string                   `json:"culturalContext"`
		AccessibilityNeeds *model.AccessibilityNeeds `json:"accessibilityNeeds"`
	} `json:"culturalPreferences"`
}

type ProfileResponse struct {
	UserID              string                    `json:"userId"`
	CulturalPreferences model.CulturalPreferences `json:"culturalPreferences"`
	IsDefault           bool                      `json:"isDefault"`
	UpdatedAt           string                    `json:"updatedAt,omitempty"`
}

func profileResponse(userID uuid.UUID, profile *model.CultureProfile) ProfileResponse {
	if profile == nil {
		return ProfileResponse{
			UserID:              userID.String(),
			CulturalPreferences: model.DefaultCulturalPreferences(),
			IsDefault:           true,
		}
	}
	return ProfileResponse{
		UserID:              profile.UserID.String(),
		CulturalPreferences: profile.CulturalPreferences,
		IsDefault:           profile.IsDefault,
		UpdatedAt:           profile.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Get returns the caller's profile, or the defaults when none is stored
// @Summary  Get culture profile
// @Tags     Profile
// @Security BearerAuth
// @Produce  json
// @Success  200 {object} ProfileResponse
// @Router   /api/v1/profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	profile, err := h.repo.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}

	c.JSON(http.StatusOK, profileResponse(userID, profile))
}

// Create stores a profile for a user who has none yet
// @Summary  Create culture profile
// @Tags     Profile
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    profile body profileRequest true "Profile"
// @Success  201 {object} ProfileResponse
// @Router   /api/v1/profile [post]
func (h *ProfileHandler) Create(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	existing, err := h.repo.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Profile already exists"})
		return
	}

	profile := &model.CultureProfile{
		ID:                  uuid.New(),
		UserID:              userID,
		CulturalPreferences: req.CulturalPreferences,
	}
	if err := h.repo.Create(c.Request.Context(), profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
		return
	}

	c.JSON(http.StatusCreated, profileResponse(userID, profile))
}

// Replace overwrites the stored preferences, creating the profile if needed
// @Summary  Replace culture profile
// @Tags     Profile
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    profile body profileRequest true "Profile"
// @Success  200 {object} ProfileResponse
// @Router   /api/v1/profile [put]
func (h *ProfileHandler) Replace(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	profile, err := h.repo.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}

	if profile == nil {
		profile = &model.CultureProfile{
			ID:                  uuid.New(),
			UserID:              userID,
			CulturalPreferences: req.CulturalPreferences,
		}
		if err := h.repo.Create(c.Request.Context(), profile); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
			return
		}
	} else {
		profile.CulturalPreferences = req.CulturalPreferences
		profile.IsDefault = false
		if err := h.repo.Update(c.Request.Context(), profile); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
	}

	c.JSON(http.StatusOK, profileResponse(userID, profile))
}

// Patch merges the provided preference fields into the stored profile
// @Summary  Patch culture profile
// @Tags     Profile
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    profile body patchProfileRequest true "Partial profile"
// @Success  200 {object} ProfileResponse
// @Router   /api/v1/profile [patch]
func (h *ProfileHandler) Patch(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	var req patchProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	profile, err := h.repo.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}

	created := false
	if profile == nil {
		// Patching an absent profile starts from the defaults.
		profile = &model.CultureProfile{
			ID:                  uuid.New(),
			UserID:              userID,
			CulturalPreferences: model.DefaultCulturalPreferences(),
		}
		created = true
	}

	prefs := &profile.CulturalPreferences
	patch := req.CulturalPreferences
	if patch.Language != nil {
		prefs.Language = *patch.Language
	}
	if patch.Region != nil {
		prefs.Region = *patch.Region
	}
	if patch.ColorPreferences != nil {
		prefs.ColorPreferences = *patch.ColorPreferences
	}
	if patch.AvoidColors != nil {
		prefs.AvoidColors = *patch.AvoidColors
	}
	if patch.SymbolStyle != nil {
		prefs.SymbolStyle = *patch.SymbolStyle
	}
	if patch.CulturalContext != nil {
		prefs.CulturalContext = *patch.CulturalContext
	}
	if patch.AccessibilityNeeds != nil {
		prefs.AccessibilityNeeds = *patch.AccessibilityNeeds
	}
	profile.IsDefault = false

	if created {
		err = h.repo.Create(c.Request.Context(), profile)
	} else {
		err = h.repo.Update(c.Request.Context(), profile)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
		return
	}

	c.JSON(http.StatusOK, profileResponse(userID, profile))
}

// Delete removes the stored profile so defaults apply again
// @Summary  Reset culture profile
// @Tags     Profile
// @Security BearerAuth
// @Produce  json
// @Success  200 {object} ProfileResponse
// @Router   /api/v1/profile [delete]
func (h *ProfileHandler) Delete(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete profile"})
		return
	}

	c.JSON(http.StatusOK, profileResponse(userID, nil))
}
