package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gottomy2/departures/internal/service/gates"
)

type GateHandler struct {
	service gates.GateUseCase
}

type gateRequest struct {
	GateNumber string `json:"gate_number" binding:"required"`
}

func NewGateHandler(service gates.GateUseCase) *GateHandler {
	return &GateHandler{service: service}
}

func (h *GateHandler) Register(router *gin.RouterGroup, authorized gin.HandlerFunc) {
	router.GET("", h.list)
	router.GET("/search", h.search)
	router.GET("/:id", h.get)
	router.POST("", authorized, h.create)
	router.PUT("/:id", authorized, h.update)
	router.DELETE("/:id", authorized, h.remove)
}

func (h *GateHandler) list(c *gin.Context) {
	page := pageFromQuery(c)
	items, total, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]gateResponse, 0, len(items))
	for _, g := range items {
		resp = append(resp, gateResponse{ID: g.ID, GateNumber: g.GateNumber})
	}
	c.JSON(http.StatusOK, pagedResponse{Items: resp, Page: page.Page, Size: page.Size, Total: total})
}

func (h *GateHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	gate, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gateResponse{ID: gate.ID, GateNumber: gate.GateNumber})
}

func (h *GateHandler) search(c *gin.Context) {
	number := c.Query("gateNumber")
	if number == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "gateNumber is required"})
		return
	}
	gate, err := h.service.GetByNumber(c.Request.Context(), number)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gateResponse{ID: gate.ID, GateNumber: gate.GateNumber})
}

func (h *GateHandler) create(c *gin.Context) {
	var req gateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gate, err := h.service.Create(c.Request.Context(), req.GateNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gateResponse{ID: gate.ID, GateNumber: gate.GateNumber})
}

func (h *GateHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req gateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gate, err := h.service.Update(c.Request.Context(), id, req.GateNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gateResponse{ID: gate.ID, GateNumber: gate.GateNumber})
}

func (h *GateHandler) remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
