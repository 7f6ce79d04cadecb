package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/db"
	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/models"
)

const bcryptCost = 10

// signToken issues an HS256 token carrying sub, email and role.
func signToken(user models.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}

	hours := getEnvInt("JWT_EXPIRATION_HOURS", 8)
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Duration(hours) * time.Hour).Unix(),
	}
	if user.NivelAcesso != nil {
		claims["role"] = *user.NivelAcesso
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Register handles POST /auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Campos obrigatórios faltando"})
		return
	}
	if req.Email == "" || req.Nome == "" || req.Senha == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Campos obrigatórios faltando"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	exists, err := h.db.UserEmailExists(ctx, req.Email)
	if err != nil {
		log.Printf("[Register] email lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao registrar usuário"})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "Email já cadastrado"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcryptCost)
	if err != nil {
		log.Printf("[Register] hash failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao registrar usuário"})
		return
	}

	user, err := h.db.RegisterUser(ctx, req.Email, req.Nome, string(hash))
	if err != nil {
		if db.IsConflict(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email já cadastrado"})
			return
		}
		log.Printf("[Register] insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao registrar usuário"})
		return
	}

	h.audit(c, "Criou usuário", fmt.Sprintf("Email: %s", user.Email))

	token, err := signToken(user)
	if err != nil {
		log.Printf("[Register] token signing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao registrar usuário"})
		return
	}

	c.JSON(http.StatusCreated, models.AuthResponse{User: user, Token: token})
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email e senha são obrigatórios"})
		return
	}

	// Older dashboard builds sent "password" instead of "senha".
	senha := req.Senha
	if senha == "" {
		senha = req.Password
	}
	if req.Email == "" || senha == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email e senha são obrigatórios"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	user, hash, err := h.db.GetUserByEmailWithHash(ctx, req.Email)
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas"})
		return
	}
	if err != nil {
		log.Printf("[Login] user lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao fazer login"})
		return
	}

	if hash == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Senha não configurada"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*hash), []byte(senha)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas"})
		return
	}

	token, err := signToken(user)
	if err != nil {
		log.Printf("[Login] token signing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao fazer login"})
		return
	}

	h.audit(c, "Login", fmt.Sprintf("Email: %s", user.Email))

	c.JSON(http.StatusOK, models.AuthResponse{User: user, Token: token})
}
