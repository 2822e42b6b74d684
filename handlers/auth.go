package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ozkkadir/depo-yonetim-sistemi/utils"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
}

// Login is a bare username lookup (the dealer network is trusted); it
// returns the user row plus a token carrying id and role.
func (api *API) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}

	user, err := api.Users.FindByUsername(c.Request.Context(), req.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	token, err := utils.JwtGenerate(user.ID, user.Username, user.Role)
	if err != nil {
		api.fail(c, "Login", req.Username, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}
