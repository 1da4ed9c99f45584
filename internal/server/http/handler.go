package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dsemenov/accountd/internal/common"
	"github.com/dsemenov/accountd/internal/logging"
	"github.com/dsemenov/accountd/internal/server/services"
)

// Handler adapts the account service to gin routes.
type Handler struct {
	users  *services.UserService
	logger logging.Logger
}

func NewHandler(users *services.UserService, logger logging.Logger) *Handler {
	return &Handler{users: users, logger: logger.With("module", "http_handler")}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// Register handles POST /api/users.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	h.logger.Info(ctx, "registration request")

	token, err := h.users.Register(ctx, services.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.logger.Info(ctx, "registered", "email", req.Email)
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Me handles GET /api/users. The caller id comes from RequireAuth.
func (h *Handler) Me(c *gin.Context) {
	view, err := h.users.GetProfile(c.Request.Context(), c.GetString(accountIDKey))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Update handles PUT /api/users.
func (h *Handler) Update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	accountID := c.GetString(accountIDKey)

	view, err := h.users.Update(ctx, accountID, services.UpdateRequest{
		Name:        req.Name,
		Email:       req.Email,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.logger.Info(ctx, "account updated", "account_id", accountID)
	c.JSON(http.StatusOK, gin.H{"user": view})
}

// writeError maps service errors to HTTP responses. Infrastructure failures
// are reported opaquely; the underlying detail stays in the server log.
func (h *Handler) writeError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"errors": ve.Violations})
	case errors.Is(err, common.ErrorAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "identity already exists"})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user does not exist"})
	case errors.Is(err, common.ErrorCredentialMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": "passwords do not match"})
	default:
		h.logger.Error(ctx, "request failed", "err", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}
