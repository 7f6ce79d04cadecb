package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/db"
	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/models"
)

// defaultPositions resolves shelf positions for a batch: explicit values
// win, the rest append after the scenario's existing links in batch order.
func defaultPositions(existing int, items []models.ScenarioPackagingItem) []int {
	positions := make([]int, len(items))
	for i, item := range items {
		if item.Posicao != nil {
			positions[i] = *item.Posicao
		} else {
			positions[i] = existing + i + 1
		}
	}
	return positions
}

// ListScenarioPackaging handles GET /scenarios/:id/packaging, ordered by
// shelf position.
func (h *Handler) ListScenarioPackaging(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	items, err := h.db.ListScenarioPackaging(ctx, c.Param("id"))
	if err != nil {
		log.Printf("[ListScenarioPackaging] query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao listar embalagens do cenário"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AddScenarioPackaging handles POST /scenarios/:id/packaging.
// Body: {"items": [{"packaging_id": ..., "posicao"?, "observacoes"?}, ...]}
func (h *Handler) AddScenarioPackaging(c *gin.Context) {
	var req models.AddScenarioPackagingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nenhuma embalagem informada"})
		return
	}
	for _, item := range req.Items {
		if item.PackagingID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Campo 'packaging_id' é obrigatório em cada item"})
			return
		}
	}

	scenarioID := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	// Default positions append after the links the scenario already has:
	// existingCount+1, existingCount+2, ... in batch order. Explicit
	// positions override.
	existing, err := h.db.CountScenarioPackaging(ctx, scenarioID)
	if err != nil {
		log.Printf("[AddScenarioPackaging] count failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao verificar embalagens já vinculadas"})
		return
	}

	positions := defaultPositions(existing, req.Items)

	inserted, err := h.db.AddScenarioPackaging(ctx, scenarioID, req.Items, positions, currentUserID(c))
	if err != nil {
		log.Printf("[AddScenarioPackaging] insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao adicionar embalagens ao cenário"})
		return
	}

	codigos := make([]string, 0, len(inserted))
	for _, row := range inserted {
		if row.Packaging != nil && row.Packaging.Codigo != "" {
			codigos = append(codigos, row.Packaging.Codigo)
		} else {
			codigos = append(codigos, row.PackagingID)
		}
	}
	h.audit(c, "Vinculou embalagens a cenário",
		fmt.Sprintf("ScenarioID: %s | Embalagens: %s (qtde: %d)", scenarioID, strings.Join(codigos, ", "), len(inserted)))

	// One mirror call per inserted row, issued together and awaited before
	// the response. Failures are logged inside the mirror.
	email := currentEmail(c)
	var wg sync.WaitGroup
	for _, row := range inserted {
		wg.Add(1)
		go func(row models.ScenarioPackaging) {
			defer wg.Done()
			h.mirror.AppendScenarioPackaging(context.Background(), row, email)
		}(row)
	}
	wg.Wait()

	c.JSON(http.StatusCreated, gin.H{"items": inserted})
}

// RemoveScenarioPackaging handles DELETE /scenarios/:id/packaging/:linkId.
// The delete is scoped by both ids, so a link cannot be removed through a
// different scenario.
func (h *Handler) RemoveScenarioPackaging(c *gin.Context) {
	scenarioID := c.Param("id")
	linkID := c.Param("linkId")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	// Pre-fetch for a richer audit entry; never blocks the delete.
	detail := fmt.Sprintf("pivot %s", linkID)
	if existing, err := h.db.GetScenarioPackaging(ctx, linkID, scenarioID); err == nil {
		if existing.Packaging != nil {
			detail = existing.Packaging.Codigo
			if existing.Packaging.Nome != "" {
				detail += " - " + existing.Packaging.Nome
			}
		} else {
			detail = existing.PackagingID
		}
	}

	err := h.db.DeleteScenarioPackaging(ctx, linkID, scenarioID)
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vínculo não encontrado"})
		return
	}
	if err != nil {
		log.Printf("[RemoveScenarioPackaging] delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao remover embalagem do cenário"})
		return
	}

	h.audit(c, "Removeu embalagem de cenário",
		fmt.Sprintf("ScenarioID: %s | Embalagem: %s", scenarioID, detail))

	c.Status(http.StatusNoContent)
}
