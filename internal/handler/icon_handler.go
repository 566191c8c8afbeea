package handler

import (
	"context"
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/ai"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/model"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/repository"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IconStore is the repository surface the icon handlers need.
type IconStore interface {
	Create(ctx context.Context, icon *model.IconLibraryEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.IconLibraryEntry, error)
	ListVisible(ctx context.Context, userID uuid.UUID, filter repository.IconFilter) ([]model.IconLibraryEntry, error)
	IncrementUsage(ctx context.Context, id uuid.UUID) error
}

// IconGenerator is the slice of the AI client the icon handlers call.
type IconGenerator interface {
	GenerateIcon(ctx context.Context, prompt string) (*ai.ImageResult, error)
	AnalyzeImageWithFallback(ctx context.Context, data []byte, mimeType string) (*ai.AnalysisResult, error)
	Synthesize(ctx context.Context, text string) (*ai.SpeechResult, error)
}

// ObjectStore persists generated assets.
type ObjectStore interface {
	Put(bucket, object string, data []byte) error
}

// PreferenceSource resolves the cultural preferences applied to prompts.
type PreferenceSource interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.CultureProfile, error)
}

// GenerationCounter tracks per-user generation totals.
type GenerationCounter interface {
	IncrementIconsGenerated(ctx context.Context, userID uuid.UUID) error
}

type IconHandler struct {
	icons    IconStore
	gen      IconGenerator
	store    ObjectStore
	profiles PreferenceSource
	users    GenerationCounter
	bucket   string
}

func NewIconHandler(icons IconStore, gen IconGenerator, store ObjectStore, profiles PreferenceSource, users GenerationCounter, bucket string) *IconHandler {
	return &IconHandler{icons: icons, gen: gen, store: store, profiles: profiles, users: users, bucket: bucket}
}

type generateFromTextRequest struct {
	Text          string   `json:"text" binding:"required"`
	GenerateAudio bool     `json:"generateAudio"`
	IsPublic      bool     `json:"isPublic"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
}

type generateFromImageRequest struct {
	Image         string `json:"image" binding:"required"`
	MimeType      string `json:"mimeType"`
	GenerateAudio bool   `json:"generateAudio"`
	IsPublic      bool   `json:"isPublic"`
}

type generateFromRecordingRequest struct {
	Audio    string `json:"audio" binding:"required"`
	MimeType string `json:"mimeType"`
	Text     string `json:"text"`
}

// IconResponse is the wire form of a library icon. AudioURL is omitted
// entirely when no audio was generated.
type IconResponse struct {
	ID               string            `json:"id"`
	Text             string            `json:"text"`
	ImageURL         string            `json:"imageUrl,omitempty"`
	ThumbnailURL     string            `json:"thumbnailUrl,omitempty"`
	AudioURL         *string           `json:"audioUrl,omitempty"`
	GenerationMethod string            `json:"generationMethod"`
	Model            string            `json:"model,omitempty"`
	CultureProfile   model.CultureHint `json:"cultureProfile"`
	IsPublic         bool              `json:"isPublic"`
	UsageCount       int64             `json:"usageCount"`
	Tags             []string          `json:"tags,omitempty"`
	Category         string            `json:"category,omitempty"`
	Warning          string            `json:"warning,omitempty"`
	CreatedAt        string            `json:"createdAt"`
}

func iconResponse(icon *model.IconLibraryEntry) IconResponse {
	resp := IconResponse{
		ID:               icon.ID.String(),
		Text:             icon.Text,
		ImageURL:         icon.ImageURL,
		ThumbnailURL:     icon.ThumbnailURL,
		GenerationMethod: icon.GenerationMethod,
		Model:            icon.Model,
		CultureProfile:   icon.CultureProfile,
		IsPublic:         icon.IsPublic,
		UsageCount:       icon.UsageCount,
		Tags:             icon.Tags,
		Category:         icon.Category,
		CreatedAt:        icon.CreatedAt.Format(time.RFC3339),
	}
	if icon.AudioURL != "" {
		resp.AudioURL = &icon.AudioURL
	}
	return resp
}

// preferences loads the caller's cultural preferences, falling back to the
// defaults when no profile is stored.
func (h *IconHandler) preferences(ctx context.Context, userID uuid.UUID) model.CulturalPreferences {
	profile, err := h.profiles.GetByUserID(ctx, userID)
	if err != nil || profile == nil {
		return model.DefaultCulturalPreferences()
	}
	return profile.CulturalPreferences
}

// GenerateFromText creates a library icon from a text label
// @Summary Generate icon from text
// @Tags    Icons
// @Accept  json
// @Produce json
// @Param   request body generateFromTextRequest true "Generation request"
// @Success 201 {object} IconResponse
// @Security BearerAuth
// @Router  /api/v1/icons/generate-from-text [post]
func (h *IconHandler) GenerateFromText(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}
	if h.gen == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI generation is not configured"})
		return
	}

	var req generateFromTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	prefs := h.preferences(c.Request.Context(), userID)
	prompt := ai.BuildIconPrompt(req.Text, prefs)

	image, err := h.gen.GenerateIcon(c.Request.Context(), prompt)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	object := storage.NewObjectName("icons", extensionForImage(image.MIMEType))
	if err := h.store.Put(h.bucket, object, image.Data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	icon := &model.IconLibraryEntry{
		ID:               uuid.New(),
		Text:             req.Text,
		ImageURL:         storage.ObjectURL(h.bucket, object),
		MimeType:         image.MIMEType,
		GeneratedBy:      userID,
		GenerationMethod: model.GenerationFromText,
		Prompt:           prompt,
		Model:            image.Model,
		CultureProfile: model.CultureHint{
			Language:    prefs.Language,
			Region:      prefs.Region,
			SymbolStyle: prefs.SymbolStyle,
		},
		IsPublic: req.IsPublic,
		Tags:     req.Tags,
		Category: req.Category,
	}

	if req.GenerateAudio {
		speech, err := h.gen.Synthesize(c.Request.Context(), req.Text)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		audioObject := storage.NewObjectName("audio", extensionForAudio(speech.MIMEType))
		if err := h.store.Put(h.bucket, audioObject, speech.Data); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store audio"})
			return
		}
		icon.AudioURL = storage.ObjectURL(h.bucket, audioObject)
	}

	if err := h.icons.Create(c.Request.Context(), icon); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save icon"})
		return
	}
	// The icon exists; a stale counter is not worth failing the request.
	_ = h.users.IncrementIconsGenerated(c.Request.Context(), userID)

	c.JSON(http.StatusCreated, iconResponse(icon))
}

// GenerateFromImage derives an icon label from an uploaded image
// @Summary Generate icon from image
// @Tags    Icons
// @Accept  json
// @Produce json
// @Param   request body generateFromImageRequest true "Base64 image payload"
// @Success 201 {object} IconResponse
// @Security BearerAuth
// @Router  /api/v1/icons/generate-from-image [post]
func (h *IconHandler) GenerateFromImage(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}
	if h.gen == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI generation is not configured"})
		return
	}

	var req generateFromImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image must be base64 encoded"})
		return
	}
	if req.MimeType == "" {
		req.MimeType = "image/png"
	}

	analysis, err := h.gen.AnalyzeImageWithFallback(c.Request.Context(), data, req.MimeType)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	object := storage.NewObjectName("icons", extensionForImage(req.MimeType))
	if err := h.store.Put(h.bucket, object, data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	prefs := h.preferences(c.Request.Context(), userID)
	icon := &model.IconLibraryEntry{
		ID:               uuid.New(),
		Text:             analysis.Description,
		ImageURL:         storage.ObjectURL(h.bucket, object),
		MimeType:         req.MimeType,
		GeneratedBy:      userID,
		GenerationMethod: model.GenerationFromImage,
		Model:            analysis.Model,
		CultureProfile: model.CultureHint{
			Language:    prefs.Language,
			Region:      prefs.Region,
			SymbolStyle: prefs.SymbolStyle,
		},
		IsPublic: req.IsPublic,
	}

	if req.GenerateAudio {
		speech, err := h.gen.Synthesize(c.Request.Context(), icon.Text)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		audioObject := storage.NewObjectName("audio", extensionForAudio(speech.MIMEType))
		if err := h.store.Put(h.bucket, audioObject, speech.Data); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store audio"})
			return
		}
		icon.AudioURL = storage.ObjectURL(h.bucket, audioObject)
	}

	if err := h.icons.Create(c.Request.Context(), icon); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save icon"})
		return
	}
	_ = h.users.IncrementIconsGenerated(c.Request.Context(), userID)

	resp := iconResponse(icon)
	resp.Warning = analysis.Warning
	c.JSON(http.StatusCreated, resp)
}

// GenerateAudioFromRecording stores a recorded clip as an icon audio asset
// @Summary Convert recorded audio
// @Tags    Icons
// @Accept  json
// @Produce json
// @Param   request body generateFromRecordingRequest true "Base64 audio payload"
// @Success 201 {object} IconResponse
// @Security BearerAuth
// @Router  /api/v1/icons/generate-audio-from-recording [post]
func (h *IconHandler) GenerateAudioFromRecording(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	var req generateFromRecordingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Audio)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Audio must be base64 encoded"})
		return
	}
	if req.MimeType == "" {
		req.MimeType = "audio/wav"
	}

	object := storage.NewObjectName("audio", extensionForAudio(req.MimeType))
	if err := h.store.Put(h.bucket, object, data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store audio"})
		return
	}

	text := req.Text
	if text == "" {
		text = "recorded message"
	}

	prefs := h.preferences(c.Request.Context(), userID)
	icon := &model.IconLibraryEntry{
		ID:               uuid.New(),
		Text:             text,
		AudioURL:         storage.ObjectURL(h.bucket, object),
		MimeType:         req.MimeType,
		GeneratedBy:      userID,
		GenerationMethod: model.GenerationFromRecording,
		CultureProfile: model.CultureHint{
			Language:    prefs.Language,
			Region:      prefs.Region,
			SymbolStyle: prefs.SymbolStyle,
		},
	}

	if err := h.icons.Create(c.Request.Context(), icon); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save icon"})
		return
	}

	c.JSON(http.StatusCreated, iconResponse(icon))
}

// List returns library icons visible to the caller
// @Summary List icons
// @Tags    Icons
// @Produce json
// @Param   category query string false "Category filter"
// @Param   tag      query string false "Tag filter"
// @Success 200 {array} IconResponse
// @Security BearerAuth
// @Router  /api/v1/icons [get]
func (h *IconHandler) List(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	filter := repository.IconFilter{
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
	}
	filter.Limit, filter.Offset = pagination(c)

	icons, err := h.icons.ListVisible(c.Request.Context(), userID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list icons"})
		return
	}

	resp := make([]IconResponse, 0, len(icons))
	for i := range icons {
		resp = append(resp, iconResponse(&icons[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// GetByID returns one icon and records the fetch
// @Summary Get icon
// @Tags    Icons
// @Produce json
// @Param   id path string true "Icon ID"
// @Success 200 {object} IconResponse
// @Security BearerAuth
// @Router  /api/v1/icons/{id} [get]
func (h *IconHandler) GetByID(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid icon ID"})
		return
	}

	icon, err := h.icons.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch icon"})
		return
	}
	if icon == nil || (icon.GeneratedBy != userID && !icon.IsPublic) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Icon not found"})
		return
	}

	_ = h.icons.IncrementUsage(c.Request.Context(), id)

	c.JSON(http.StatusOK, iconResponse(icon))
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}

func extensionForImage(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "png"):
		return ".png"
	case strings.Contains(mimeType, "jpeg"), strings.Contains(mimeType, "jpg"):
		return ".jpg"
	case strings.Contains(mimeType, "webp"):
		return ".webp"
	default:
		return ".bin"
	}
}

func extensionForAudio(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "wav"):
		return ".wav"
	case strings.Contains(mimeType, "mpeg"), strings.Contains(mimeType, "mp3"):
		return ".mp3"
	case strings.Contains(mimeType, "ogg"):
		return ".ogg"
	case strings.Contains(mimeType, "webm"):
		return ".webm"
	default:
		return ".bin"
	}
}
