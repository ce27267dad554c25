package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/glowmart/app/services"
	"github.com/shashiranjanraj/glowmart/pkg/response"
)

// AuthController serves the admin login.
type AuthController struct {
	auth *services.AuthService
}

// NewAuthController builds an AuthController.
func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login exchanges the shared admin credential for a signed token.
//
// POST /auth/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		response.Message(w, http.StatusBadRequest, "Missing credentials")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.Message(w, http.StatusBadRequest, "Missing credentials")
		return
	}

	token, err := c.auth.Login(req.Username, req.Password)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"token": token})
}
