package api

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/db"
	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/logging"
	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/models"
	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/sheets"
	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/storage"
)

// Store is the persistence surface the handlers depend on. *db.Database
// is the production implementation; tests substitute an in-memory one.
type Store interface {
	Health(ctx context.Context) error
	InsertAuditLog(ctx context.Context, actorID *string, acao string, detalhes string) error

	ListPackaging(ctx context.Context, params models.PackagingListParams) ([]models.Packaging, int, error)
	GetPackaging(ctx context.Context, id string) (models.Packaging, error)
	CreatePackaging(ctx context.Context, req models.CreatePackagingRequest, creatorID *string) (models.Packaging, error)
	UpdatePackaging(ctx context.Context, id string, req models.UpdatePackagingRequest, modifierID *string) (models.Packaging, error)
	ArchivePackaging(ctx context.Context, id string, modifierID *string) (models.Packaging, error)

	ListScenarios(ctx context.Context, q string, page, pageSize int) ([]models.Scenario, int, error)
	GetScenario(ctx context.Context, id string) (models.Scenario, error)
	CreateScenario(ctx context.Context, codigo string, req models.CreateScenarioRequest, creatorID *string) (models.Scenario, error)

	ListScenarioPackaging(ctx context.Context, scenarioID string) ([]models.ScenarioPackaging, error)
	CountScenarioPackaging(ctx context.Context, scenarioID string) (int, error)
	AddScenarioPackaging(ctx context.Context, scenarioID string, items []models.ScenarioPackagingItem, positions []int, creatorID *string) ([]models.ScenarioPackaging, error)
	GetScenarioPackaging(ctx context.Context, id, scenarioID string) (models.ScenarioPackaging, error)
	DeleteScenarioPackaging(ctx context.Context, id, scenarioID string) error

	ListLocations(ctx context.Context, q string, page, pageSize int) ([]models.Location, int, error)
	GetLocation(ctx context.Context, id string) (models.Location, error)
	CreateLocation(ctx context.Context, req models.CreateLocationRequest, creatorEmail *string) (models.Location, error)
	UpdateLocation(ctx context.Context, id string, req models.UpdateLocationRequest, modifierID *string) (models.Location, error)
	DeleteLocation(ctx context.Context, id string) (models.Location, error)

	UserEmailExists(ctx context.Context, email string) (bool, error)
	GetUserByEmailWithHash(ctx context.Context, email string) (models.User, *string, error)
	RegisterUser(ctx context.Context, email, nome, passwordHash string) (models.User, error)
	CreateUser(ctx context.Context, req models.CreateUserRequest, senhaHash *string) (models.User, error)
	ListUsers(ctx context.Context, params models.UserListParams) ([]models.User, int, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest, senhaHash *string) (models.User, error)
	DeactivateUser(ctx context.Context, id string) (models.User, error)
	TouchLastAccess(ctx context.Context, id string) error
}

var _ Store = (*db.Database)(nil)

// Handler holds the process-lifetime service handles and provides the
// HTTP handlers. Everything is injected at startup; there are no mutable
// package globals.
type Handler struct {
	db       Store
	mirror   *sheets.Mirror
	uploader *storage.Uploader
}

// NewHandler creates a new handler instance.
func NewHandler(store Store, mirror *sheets.Mirror, uploader *storage.Uploader) *Handler {
	return &Handler{db: store, mirror: mirror, uploader: uploader}
}

// Health reports readiness (database reachable).
func (h *Handler) Health(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database not initialized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.db.Health(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// currentUserID returns the authenticated account id, when present.
func currentUserID(c *gin.Context) *string {
	if v, ok := c.Get("user_id"); ok {
		if s, ok := v.(string); ok && s != "" {
			return &s
		}
	}
	return nil
}

// currentEmail returns the authenticated account email, when present. The
// sheet mirror records this instead of the store uuid.
func currentEmail(c *gin.Context) *string {
	if v, ok := c.Get("email"); ok {
		if s, ok := v.(string); ok && s != "" {
			return &s
		}
	}
	return nil
}

// parsePagination reads page/pageSize query params. Missing or malformed
// values fall back to the defaults; anything below 1 is clamped to 1.
func parsePagination(c *gin.Context, defaultPageSize int) (page, pageSize int) {
	page = 1
	pageSize = defaultPageSize

	if raw := c.Query("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			page = v
		}
	}
	if raw := c.Query("pageSize"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			pageSize = v
		}
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	return page, pageSize
}

// audit appends an action record, best-effort. A failed write is logged
// and never changes the operation's outcome.
func (h *Handler) audit(c *gin.Context, acao, detalhes string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.db.InsertAuditLog(ctx, currentUserID(c), acao, detalhes); err != nil {
		logging.LogKV("error", "audit log write failed", map[string]interface{}{
			"acao":  acao,
			"error": err.Error(),
		})
	}
}

// getEnvInt reads an integer environment variable with a default.
func getEnvInt(key string, defaultValue int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return defaultValue
}
