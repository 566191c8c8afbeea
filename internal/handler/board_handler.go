package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/middleware"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/model"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const MaxBoardsPerUser = 50

// BoardStore is the repository surface the board handlers need.
type BoardStore interface {
	Create(ctx context.Context, board *model.Board) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	GetOwned(ctx context.Context, userID uuid.UUID, opts repository.ListOptions) ([]model.Board, error)
	GetPublic(ctx context.Context, opts repository.ListOptions) ([]model.Board, error)
	CountOwned(ctx context.Context, userID uuid.UUID) (int64, error)
	Update(ctx context.Context, board *model.Board) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BoardHandler struct {
	boardRepo BoardStore
}

func NewBoardHandler(boardRepo BoardStore) *BoardHandler {
	return &BoardHandler{boardRepo: boardRepo}
}

type IconPlacementRequest struct {
	ID       string `json:"id" binding:"required"`
	Text     string `json:"text" binding:"required"`
	ImageURL string `json:"imageUrl"`
	Position struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"position"`
	Category string `json:"category"`
	Color    string `json:"color"`
}

type CreateBoardRequest struct {
	Name        string                 `json:"name" binding:"required"`
	Description string                 `json:"description"`
	IsPublic    bool                   `json:"isPublic"`
	Icons       []IconPlacementRequest `json:"icons"`
	Tags        []string               `json:"tags"`
}

type UpdateBoardRequest struct {
	Name        string                 `json:"name" binding:"required"`
	Description string                 `json:"description"`
	IsPublic    bool                   `json:"isPublic"`
	Icons       []IconPlacementRequest `json:"icons"`
	Tags        []string               `json:"tags"`
}

type BoardResponse struct {
	ID          string                `json:"id"`
	UserID      string                `json:"userId"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	IsPublic    bool                  `json:"isPublic"`
	Icons       []model.IconPlacement `json:"icons"`
	Metadata    model.BoardMetadata   `json:"metadata"`
	CreatedAt   string                `json:"createdAt"`
	UpdatedAt   string                `json:"updatedAt"`
}

func boardResponse(board *model.Board) BoardResponse {
	icons := board.Icons
	if icons == nil {
		icons = model.IconPlacements{}
	}
	return BoardResponse{
		ID:          board.ID.String(),
		UserID:      board.UserID.String(),
		Name:        board.Name,
		Description: board.Description,
		IsPublic:    board.IsPublic,
		Icons:       icons,
		Metadata:    board.Metadata,
		CreatedAt:   board.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   board.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func placementsFromRequest(reqs []IconPlacementRequest) (model.IconPlacements, bool) {
	icons := make(model.IconPlacements, 0, len(reqs))
	seen := make(map[string]bool, len(reqs))
	for _, r := range reqs {
		if seen[r.ID] {
			return nil, false
		}
		seen[r.ID] = true
		icons = append(icons, model.IconPlacement{
			ID:       r.ID,
			Text:     r.Text,
			ImageURL: r.ImageURL,
			Position: model.GridPosition{X: r.Position.X, Y: r.Position.Y},
			Category: r.Category,
			Color:    r.Color,
		})
	}
	return icons, true
}

func listOptions(c *gin.Context) repository.ListOptions {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	return repository.ListOptions{
		SortBy:     c.DefaultQuery("sortBy", "updatedAt"),
		Descending: c.DefaultQuery("order", "desc") == "desc",
		Limit:      limit,
		Offset:     offset,
	}
}

// Create creates a new board for the authenticated user
// @Summary  Create board
// @Tags     Boards
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    board body CreateBoardRequest true "Board"
// @Success  201 {object} BoardResponse
// @Router   /api/v1/boards [post]
func (h *BoardHandler) Create(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	count, err := h.boardRepo.CountOwned(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check board count"})
		return
	}
	if count >= MaxBoardsPerUser {
		c.JSON(http.StatusForbidden, gin.H{"error": "Maximum number of boards reached"})
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	icons, ok := placementsFromRequest(req.Icons)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Duplicate icon id within board"})
		return
	}

	board := &model.Board{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		Icons:       icons,
		Metadata:    model.BoardMetadata{Tags: req.Tags},
	}
	board.Touch()

	if err := h.boardRepo.Create(c.Request.Context(), board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create board"})
		return
	}

	c.JSON(http.StatusCreated, boardResponse(board))
}

// GetAll lists the authenticated user's boards
// @Summary  List own boards
// @Tags     Boards
// @Security BearerAuth
// @Produce  json
// @Param    sortBy query string false "updatedAt, createdAt or name"
// @Success  200 {array} BoardResponse
// @Router   /api/v1/boards [get]
func (h *BoardHandler) GetAll(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	boards, err := h.boardRepo.GetOwned(c.Request.Context(), userID, listOptions(c))
	if err != nil {
		if err == repository.ErrInvalidSortField {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sortBy field"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve boards"})
		return
	}

	response := make([]BoardResponse, len(boards))
	for i := range boards {
		response[i] = boardResponse(&boards[i])
	}
	c.JSON(http.StatusOK, response)
}

// GetPublic lists public boards, visible to any authenticated reader
// @Summary  List public boards
// @Tags     Boards
// @Security BearerAuth
// @Produce  json
// @Success  200 {array} BoardResponse
// @Router   /api/v1/boards/public [get]
func (h *BoardHandler) GetPublic(c *gin.Context) {
	boards, err := h.boardRepo.GetPublic(c.Request.Context(), listOptions(c))
	if err != nil {
		if err == repository.ErrInvalidSortField {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sortBy field"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve boards"})
		return
	}

	response := make([]BoardResponse, len(boards))
	for i := range boards {
		response[i] = boardResponse(&boards[i])
	}
	c.JSON(http.StatusOK, response)
}

// GetByID returns one board; public boards are readable by any user
// @Summary  Get board
// @Tags     Boards
// @Security BearerAuth
// @Produce  json
// @Param    id path string true "Board ID"
// @Success  200 {object} BoardResponse
// @Router   /api/v1/boards/{id} [get]
func (h *BoardHandler) GetByID(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}

	if board.UserID != userID && !board.IsPublic {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to access this board"})
		return
	}

	c.JSON(http.StatusOK, boardResponse(board))
}

// Update replaces the whole board document
// @Summary  Update board
// @Tags     Boards
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    id path string true "Board ID"
// @Param    board body UpdateBoardRequest true "Board"
// @Success  200 {object} BoardResponse
// @Router   /api/v1/boards/{id} [put]
func (h *BoardHandler) Update(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}
	if board.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to update this board"})
		return
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	icons, ok := placementsFromRequest(req.Icons)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Duplicate icon id within board"})
		return
	}

	// Whole-document replace: the stored board becomes the request body.
	board.Name = req.Name
	board.Description = req.Description
	board.IsPublic = req.IsPublic
	board.Icons = icons
	board.Metadata.Tags = req.Tags
	board.Touch()

	if err := h.boardRepo.Update(c.Request.Context(), board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board"})
		return
	}

	c.JSON(http.StatusOK, boardResponse(board))
}

// Delete removes a board
// @Summary  Delete board
// @Tags     Boards
// @Security BearerAuth
// @Param    id path string true "Board ID"
// @Success  204
// @Router   /api/v1/boards/{id} [delete]
func (h *BoardHandler) Delete(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}
	if board.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to delete this board"})
		return
	}

	if err := h.boardRepo.Delete(c.Request.Context(), boardID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete board"})
		return
	}
	c.Status(http.StatusNoContent)
}

// authenticatedUser pulls the user ID the auth middleware stored.
func authenticatedUser(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return uuid.Nil, false
	}
	return userID, true
}

