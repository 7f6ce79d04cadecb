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

// ListPackaging handles GET /packaging.
// Optional filters: ?status=ativo&material=Papel&pais=Brasil&q=texto&tag=algumaTag&page=1&pageSize=20
func (h *Handler) ListPackaging(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	page, pageSize := parsePagination(c, 20)
	params := models.PackagingListParams{
		Q:        c.Query("q"),
		Status:   c.Query("status"),
		Material: c.Query("material"),
		Pais:     c.Query("pais"),
		Tag:      c.Query("tag"),
		Page:     page,
		PageSize: pageSize,
	}

	items, total, err := h.db.ListPackaging(ctx, params)
	if err != nil {
		log.Printf("[ListPackaging] query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao listar embalagens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": models.NewPagination(page, pageSize, total),
	})
}

// GetPackaging handles GET /packaging/:id.
func (h *Handler) GetPackaging(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	p, err := h.db.GetPackaging(ctx, c.Param("id"))
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Embalagem não encontrada"})
		return
	}
	if err != nil {
		log.Printf("[GetPackaging] query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar embalagem"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"embalagem": p})
}

// CreatePackaging handles POST /packaging.
func (h *Handler) CreatePackaging(c *gin.Context) {
	var req models.CreatePackagingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}
	if req.Codigo == "" || req.Nome == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Campos 'codigo' e 'nome' são obrigatórios"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	p, err := h.db.CreatePackaging(ctx, req, currentUserID(c))
	if err != nil {
		log.Printf("[CreatePackaging] insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar embalagem"})
		return
	}

	h.audit(c, "Criou embalagem", fmt.Sprintf("Código: %s | Nome: %s", p.Codigo, p.Nome))

	// Mirror write carries the creator's email instead of the store uuid.
	h.mirror.AppendPackaging(context.Background(), p, currentEmail(c))

	c.JSON(http.StatusCreated, gin.H{"embalagem": p})
}

// UpdatePackaging handles PATCH /packaging/:id with partial-patch
// semantics: only fields present in the body are changed.
func (h *Handler) UpdatePackaging(c *gin.Context) {
	var req models.UpdatePackagingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	p, err := h.db.UpdatePackaging(ctx, c.Param("id"), req, currentUserID(c))
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Embalagem não encontrada"})
		return
	}
	if err != nil {
		log.Printf("[UpdatePackaging] update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar embalagem"})
		return
	}

	h.audit(c, "Atualizou embalagem", fmt.Sprintf("ID: %s | Código: %s", p.ID, p.Codigo))

	c.JSON(http.StatusOK, gin.H{"embalagem": p})
}

// DeletePackaging handles DELETE /packaging/:id. The delete is soft: the
// row stays, its status flips to "arquivado".
func (h *Handler) DeletePackaging(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	p, err := h.db.ArchivePackaging(ctx, c.Param("id"), currentUserID(c))
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Embalagem não encontrada"})
		return
	}
	if err != nil {
		log.Printf("[DeletePackaging] archive failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao arquivar embalagem"})
		return
	}

	h.audit(c, "Arquivou embalagem", fmt.Sprintf("ID: %s | Código: %s", p.ID, p.Codigo))

	c.JSON(http.StatusOK, gin.H{"embalagem": p})
}
