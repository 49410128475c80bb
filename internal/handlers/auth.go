package handlers

import (
	"net/http"

	"property-listing-portal/internal/auth"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes the admin login endpoint.
type AuthHandler struct {
	gate *auth.Gate
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(gate *auth.Gate) *AuthHandler {
	return &AuthHandler{gate: gate}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies the admin credential pair and returns a bearer token. Wrong
// email and wrong password produce the same response shape.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	token, err := h.gate.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
