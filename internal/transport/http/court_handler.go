package httpx

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/padel-booking/internal/domain"
	"github.com/you/padel-booking/internal/service"
)

type CourtHandler struct {
	svc *service.CourtSvc
}

func NewCourtHandler(svc *service.CourtSvc) *CourtHandler {
	return &CourtHandler{svc: svc}
}

// GET /v1/courts?type=padel&page=1&page_size=20
func (h *CourtHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	courts, err := h.svc.List(c, page-1, size, domain.CourtType(c.Query("type")))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": courts, "count": len(courts)})
}

// GET /v1/courts/:id
func (h *CourtHandler) Get(c *gin.Context) {
	court, err := h.svc.Get(c, c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, court)
}

// POST /v1/courts (OWNER/ADMIN)
func (h *CourtHandler) Create(c *gin.Context) {
	var in struct {
		Name         string  `json:"name" binding:"required"`
		Type         string  `json:"type" binding:"required"`
		PricePerHour int64   `json:"price_per_hour" binding:"required"`
		ImageURL     string  `json:"image_url"`
		Rating       float64 `json:"rating"`
		Location     string  `json:"location"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": err.Error()})
		return
	}
	court, err := h.svc.Create(c, domain.Court{
		Name:         in.Name,
		Type:         domain.CourtType(in.Type),
		PricePerHour: in.PricePerHour,
		ImageURL:     in.ImageURL,
		Rating:       in.Rating,
		Location:     in.Location,
		OwnerID:      currentUserID(c),
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, court)
}

// PUT /v1/courts/:id (OWNER/ADMIN)
func (h *CourtHandler) Update(c *gin.Context) {
	var in domain.Court
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": err.Error()})
		return
	}
	in.ID = c.Param("id")
	court, err := h.svc.Update(c, in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, court)
}

// DELETE /v1/courts/:id (OWNER/ADMIN)
func (h *CourtHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c, c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
