package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/db"
	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/logging"
	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/models"
)

// GetCurrentUser handles GET /users/me.
func (h *Handler) GetCurrentUser(c *gin.Context) {
	userID := currentUserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuário não autenticado"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	user, err := h.db.GetUser(ctx, *userID)
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}
	if err != nil {
		log.Printf("[GetCurrentUser] query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno ao carregar usuário atual"})
		return
	}

	// Best-effort last-access stamp.
	if err := h.db.TouchLastAccess(ctx, *userID); err != nil {
		logging.LogKV("warn", "last access update failed", map[string]interface{}{
			"user_id": *userID, "error": err.Error(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ListUsers handles GET /users.
// Optional filters: ?q=texto&status=ativo&page=1&pageSize=50
func (h *Handler) ListUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	page, pageSize := parsePagination(c, 50)
	params := models.UserListParams{
		Q:        c.Query("q"),
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	}

	items, total, err := h.db.ListUsers(ctx, params)
	if err != nil {
		log.Printf("[ListUsers] query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao listar usuários"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": models.NewPagination(page, pageSize, total),
	})
}

// GetUser handles GET /users/:id.
func (h *Handler) GetUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	user, err := h.db.GetUser(ctx, c.Param("id"))
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}
	if err != nil {
		log.Printf("[GetUser] query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar usuário"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"usuario": user})
}

// CreateUser handles POST /users (admin-provisioned accounts).
func (h *Handler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}
	if req.Email == "" || req.Nome == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Campos 'email' e 'nome' são obrigatórios."})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	exists, err := h.db.UserEmailExists(ctx, req.Email)
	if err != nil {
		log.Printf("[CreateUser] email lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao verificar usuário existente"})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "Email já cadastrado"})
		return
	}

	var senhaHash *string
	if req.Senha != nil && strings.TrimSpace(*req.Senha) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Senha), bcryptCost)
		if err != nil {
			log.Printf("[CreateUser] hash failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar usuário"})
			return
		}
		hashed := string(hash)
		senhaHash = &hashed
	}

	user, err := h.db.CreateUser(ctx, req, senhaHash)
	if err != nil {
		if db.IsConflict(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email já cadastrado"})
			return
		}
		log.Printf("[CreateUser] insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar usuário"})
		return
	}

	h.mirror.AppendUser(context.Background(), user)

	nivel := "-"
	if user.NivelAcesso != nil && *user.NivelAcesso != "" {
		nivel = *user.NivelAcesso
	}
	h.audit(c, "Criou usuário", fmt.Sprintf("E-mail: %s | Nome: %s | Nível: %s", user.Email, user.Nome, nivel))

	c.JSON(http.StatusCreated, gin.H{"usuario": user})
}

// UpdateUser handles PATCH /users/:id. A plaintext "senha" in the body is
// hashed here and never passed through.
func (h *Handler) UpdateUser(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}

	var senhaHash *string
	if req.Senha != nil && *req.Senha != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Senha), bcryptCost)
		if err != nil {
			log.Printf("[UpdateUser] hash failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar usuário"})
			return
		}
		hashed := string(hash)
		senhaHash = &hashed
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	user, err := h.db.UpdateUser(ctx, c.Param("id"), req, senhaHash)
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}
	if err != nil {
		if db.IsConflict(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email já cadastrado"})
			return
		}
		log.Printf("[UpdateUser] update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar usuário"})
		return
	}

	h.audit(c, "Atualizou usuário", fmt.Sprintf("ID: %s | Email: %s", user.ID, user.Email))

	c.JSON(http.StatusOK, gin.H{"usuario": user})
}

// DeleteUser handles DELETE /users/:id. The delete is soft: status flips
// to "inativo" and the row stays.
func (h *Handler) DeleteUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	user, err := h.db.DeactivateUser(ctx, c.Param("id"))
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}
	if err != nil {
		log.Printf("[DeleteUser] deactivate failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao inativar usuário"})
		return
	}

	h.audit(c, "Inativou usuário", fmt.Sprintf("ID: %s | Email: %s | Nome: %s", user.ID, user.Email, user.Nome))

	c.Status(http.StatusNoContent)
}
