package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/padel-booking/internal/domain"
	"github.com/you/padel-booking/internal/service"
)

type MatchHandler struct {
	svc *service.MatchSvc
}

func NewMatchHandler(svc *service.MatchSvc) *MatchHandler {
	return &MatchHandler{svc: svc}
}

// POST /v1/matches
func (h *MatchHandler) Create(c *gin.Context) {
	var in struct {
		BookingID string `json:"booking_id" binding:"required"`
		Team      string `json:"team"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": err.Error()})
		return
	}
	m, err := h.svc.Create(c, currentUserID(c), in.BookingID, domain.Team(in.Team))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// GET /v1/matches?status=
func (h *MatchHandler) List(c *gin.Context) {
	matches, err := h.svc.ListForUser(c, currentUserID(c), domain.MatchStatus(c.Query("status")))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": matches, "count": len(matches)})
}

// GET /v1/matches/:id
func (h *MatchHandler) Get(c *gin.Context) {
	m, players, err := h.svc.Get(c, c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": m, "players": players})
}

// POST /v1/matches/:id/players
func (h *MatchHandler) AddPlayer(c *gin.Context) {
	var in struct {
		UserID string `json:"user_id" binding:"required"`
		Team   string `json:"team" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": err.Error()})
		return
	}
	if err := h.svc.AddPlayer(c, currentUserID(c), c.Param("id"), in.UserID, domain.Team(in.Team)); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// DELETE /v1/matches/:id/players/:userId
func (h *MatchHandler) RemovePlayer(c *gin.Context) {
	if err := h.svc.RemovePlayer(c, currentUserID(c), c.Param("id"), c.Param("userId")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PUT /v1/matches/:id
func (h *MatchHandler) Update(c *gin.Context) {
	var in struct {
		Status string  `json:"status" binding:"required"`
		Result *string `json:"result"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": err.Error()})
		return
	}
	var result *domain.MatchResult
	if in.Result != nil {
		r := domain.MatchResult(*in.Result)
		result = &r
	}
	m, err := h.svc.UpdateStatus(c, currentUserID(c), c.Param("id"), domain.MatchStatus(in.Status), result)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}
