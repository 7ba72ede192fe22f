package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/padel-booking/internal/domain"
	"github.com/you/padel-booking/internal/service"
)

type AuthHandler struct {
	svc *service.AuthSvc
}

func NewAuthHandler(svc *service.AuthSvc) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func userJSON(u *domain.User) gin.H {
	return gin.H{
		"id":                u.ID,
		"email":             u.Email,
		"full_name":         u.FullName,
		"level":             u.Level,
		"profile_image_url": u.ProfileImageURL,
		"role":              u.Role,
	}
}

// POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		FullName string `json:"full_name"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": err.Error()})
		return
	}
	u, err := h.svc.Register(c, in.Email, in.Password, in.FullName)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, userJSON(u))
}

// POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": err.Error()})
		return
	}
	u, access, refresh, err := h.svc.Login(c, in.Email, in.Password)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":          userJSON(u),
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// GET /v1/users/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	u, err := h.svc.Profile(c, currentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, userJSON(u))
}

// PUT /v1/users/me
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var in struct {
		FullName        string `json:"full_name"`
		Level           string `json:"level"`
		ProfileImageURL string `json:"profile_image_url"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": err.Error()})
		return
	}
	u, err := h.svc.UpdateProfile(c, currentUserID(c), in.FullName, in.Level, in.ProfileImageURL)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, userJSON(u))
}
