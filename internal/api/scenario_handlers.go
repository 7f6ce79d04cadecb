package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/db"
	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/models"
)

// generateScenarioCode builds a code from the current time when the
// caller does not supply one. Base36 keeps it short; collisions are
// unlikely enough for this catalog's volume.
func generateScenarioCode(now time.Time) string {
	return "SCN-" + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
}

// ListScenarios handles GET /scenarios.
// Optional filters: ?q=texto&page=1&pageSize=50
func (h *Handler) ListScenarios(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	page, pageSize := parsePagination(c, 50)
	items, total, err := h.db.ListScenarios(ctx, c.Query("q"), page, pageSize)
	if err != nil {
		log.Printf("[ListScenarios] query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao listar cenários"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": models.NewPagination(page, pageSize, total),
	})
}

// GetScenario handles GET /scenarios/:id.
func (h *Handler) GetScenario(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	s, err := h.db.GetScenario(ctx, c.Param("id"))
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cenário não encontrado"})
		return
	}
	if err != nil {
		log.Printf("[GetScenario] query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar cenário"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"scenario": s})
}

// CreateScenario handles POST /scenarios. Scenarios are create-only:
// there are no update or delete endpoints.
func (h *Handler) CreateScenario(c *gin.Context) {
	var req models.CreateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}
	if strings.TrimSpace(req.Nome) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Campo 'nome' é obrigatório para o cenário."})
		return
	}

	codigo := strings.TrimSpace(req.Codigo)
	if codigo == "" {
		codigo = generateScenarioCode(time.Now())
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	s, err := h.db.CreateScenario(ctx, codigo, req, currentUserID(c))
	if err != nil {
		log.Printf("[CreateScenario] insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar cenário"})
		return
	}

	h.audit(c, "Criou cenário", fmt.Sprintf("Código: %s | Nome: %s", s.Codigo, s.Nome))
	h.mirror.AppendScenario(context.Background(), s, currentEmail(c))

	c.JSON(http.StatusCreated, gin.H{"scenario": s})
}
