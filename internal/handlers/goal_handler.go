package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "financehub/internal/errors"
	"financehub/internal/models"
	"financehub/internal/services"
)

// GoalHandler handles savings goal and budget requests.
type GoalHandler struct {
	goalService services.GoalServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// CreateGoalRequest represents the request payload for creating a goal
type CreateGoalRequest struct {
	Type     models.GoalType `json:"type" binding:"required,goal_type"`
	Name     string          `json:"name" binding:"required,max=100"`
	Target   decimal.Decimal `json:"target"`
	Current  decimal.Decimal `json:"current"`
	Deadline *string         `json:"deadline"`
	Category string          `json:"category" binding:"max=100"`
}

// CreateGoal handles the creation of a new goal
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.CreateGoalInput{
		Type:     req.Type,
		Name:     req.Name,
		Target:   req.Target,
		Current:  req.Current,
		Category: req.Category,
	}

	if req.Deadline != nil && *req.Deadline != "" {
		parsed, parseErr := parseFlexibleTime(*req.Deadline)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		input.Deadline = &parsed
	}

	goal, err := h.goalService.CreateGoal(input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetGoals handles the retrieval of goals, optionally filtered by type
func (h *GoalHandler) GetGoals(c *gin.Context) {
	var goalType *models.GoalType
	if v := c.Query("type"); v != "" {
		t := models.GoalType(v)
		switch t {
		case models.GoalTypeSavings, models.GoalTypeBudget:
			goalType = &t
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid type, must be savings or budget"))
			return
		}
	}

	goals, err := h.goalService.ListGoals(goalType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// GetGoalByID handles the retrieval of a specific goal
func (h *GoalHandler) GetGoalByID(c *gin.Context) {
	goal, err := h.goalService.GetGoalByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// UpdateGoalRequest represents the request payload for updating a goal.
type UpdateGoalRequest struct {
	Name     *string          `json:"name" binding:"omitempty,max=100"`
	Target   *decimal.Decimal `json:"target"`
	Deadline *string          `json:"deadline"`
	Category *string          `json:"category" binding:"omitempty,max=100"`
}

// UpdateGoal handles updating an existing goal
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.UpdateGoalInput{
		Name:     req.Name,
		Target:   req.Target,
		Category: req.Category,
	}

	if req.Deadline != nil && *req.Deadline != "" {
		parsed, parseErr := parseFlexibleTime(*req.Deadline)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		input.Deadline = &parsed
	}

	goal, err := h.goalService.UpdateGoal(c.Param("id"), input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal handles the deletion of a goal
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	if err := h.goalService.DeleteGoal(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully"})
}

// AddProgressRequest represents the request payload for adding savings progress
type AddProgressRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// AddProgress handles adding progress to a savings goal
func (h *GoalHandler) AddProgress(c *gin.Context) {
	var req AddProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.AddGoalProgress(c.Param("id"), req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// GetBudgetProgress handles the retrieval of a budget goal's spending progress
func (h *GoalHandler) GetBudgetProgress(c *gin.Context) {
	progress, err := h.goalService.GetBudgetProgress(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}
