package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/db"
	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/models"
)

// ListLocations handles GET /locations.
// Optional filters: ?q=texto&page=1&pageSize=20
func (h *Handler) ListLocations(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	page, pageSize := parsePagination(c, 20)
	items, total, err := h.db.ListLocations(ctx, c.Query("q"), page, pageSize)
	if err != nil {
		log.Printf("[ListLocations] query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao listar locais"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": models.NewPagination(page, pageSize, total),
	})
}

// GetLocation handles GET /locations/:id.
func (h *Handler) GetLocation(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	l, err := h.db.GetLocation(ctx, c.Param("id"))
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Local não encontrado"})
		return
	}
	if err != nil {
		log.Printf("[GetLocation] query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar local"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"location": l})
}

// CreateLocation handles POST /locations.
func (h *Handler) CreateLocation(c *gin.Context) {
	var req models.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}
	if req.Code == "" || req.Building == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Campos 'code' e 'building' são obrigatórios"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	// Locations record the creator's email in the store too, matching the
	// spreadsheet tab.
	l, err := h.db.CreateLocation(ctx, req, currentEmail(c))
	if err != nil {
		log.Printf("[CreateLocation] insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar local"})
		return
	}

	h.audit(c, "Criou local", fmt.Sprintf("Code: %s | Building: %s", l.Code, l.Building))
	h.mirror.AppendLocation(context.Background(), l)

	c.JSON(http.StatusCreated, gin.H{"location": l})
}

// UpdateLocation handles PATCH /locations/:id.
func (h *Handler) UpdateLocation(c *gin.Context) {
	var req models.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	l, err := h.db.UpdateLocation(ctx, c.Param("id"), req, currentUserID(c))
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Local não encontrado"})
		return
	}
	if err != nil {
		log.Printf("[UpdateLocation] update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar local"})
		return
	}

	h.audit(c, "Atualizou local", fmt.Sprintf("ID: %s | Code: %s | Building: %s", l.ID, l.Code, l.Building))

	c.JSON(http.StatusOK, gin.H{"location": l})
}

// DeleteLocation handles DELETE /locations/:id. Locations are the one
// resource that is hard-deleted.
func (h *Handler) DeleteLocation(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	l, err := h.db.DeleteLocation(ctx, c.Param("id"))
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Local não encontrado"})
		return
	}
	if err != nil {
		log.Printf("[DeleteLocation] delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao excluir local"})
		return
	}

	h.audit(c, "Excluiu local", fmt.Sprintf("ID: %s | Code: %s | Building: %s", l.ID, l.Code, l.Building))

	c.JSON(http.StatusOK, gin.H{"location": l})
}
