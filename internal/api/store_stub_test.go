package api

import (
	"context"
	"time"

	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/db"
	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/models"
)

// memStore is an in-memory Store for handler tests. Only the paths the
// tests exercise carry real behavior; the rest return empty results.
type memStore struct {
	packaging map[string]models.Packaging
	users     map[string]models.User
	locations map[string]models.Location
	links     map[string]models.ScenarioPackaging
	audit     []string
}

func newMemStore() *memStore {
	return &memStore{
		packaging: map[string]models.Packaging{},
		users:     map[string]models.User{},
		locations: map[string]models.Location{},
		links:     map[string]models.ScenarioPackaging{},
	}
}

func (m *memStore) Health(ctx context.Context) error { return nil }

func (m *memStore) InsertAuditLog(ctx context.Context, actorID *string, acao string, detalhes string) error {
	m.audit = append(m.audit, acao)
	return nil
}

func (m *memStore) ListPackaging(ctx context.Context, params models.PackagingListParams) ([]models.Packaging, int, error) {
	return []models.Packaging{}, 0, nil
}

func (m *memStore) GetPackaging(ctx context.Context, id string) (models.Packaging, error) {
	p, ok := m.packaging[id]
	if !ok {
		return models.Packaging{}, db.ErrNotFound
	}
	return p, nil
}

func (m *memStore) CreatePackaging(ctx context.Context, req models.CreatePackagingRequest, creatorID *string) (models.Packaging, error) {
	return models.Packaging{}, nil
}

func (m *memStore) UpdatePackaging(ctx context.Context, id string, req models.UpdatePackagingRequest, modifierID *string) (models.Packaging, error) {
	p, ok := m.packaging[id]
	if !ok {
		return models.Packaging{}, db.ErrNotFound
	}
	return p, nil
}

func (m *memStore) ArchivePackaging(ctx context.Context, id string, modifierID *string) (models.Packaging, error) {
	p, ok := m.packaging[id]
	if !ok {
		return models.Packaging{}, db.ErrNotFound
	}
	now := time.Now()
	p.Status = "arquivado"
	p.ModificadoPor = modifierID
	p.DataModificacao = &now
	m.packaging[id] = p
	return p, nil
}

func (m *memStore) ListScenarios(ctx context.Context, q string, page, pageSize int) ([]models.Scenario, int, error) {
	return []models.Scenario{}, 0, nil
}

func (m *memStore) GetScenario(ctx context.Context, id string) (models.Scenario, error) {
	return models.Scenario{}, db.ErrNotFound
}

func (m *memStore) CreateScenario(ctx context.Context, codigo string, req models.CreateScenarioRequest, creatorID *string) (models.Scenario, error) {
	return models.Scenario{}, nil
}

func (m *memStore) ListScenarioPackaging(ctx context.Context, scenarioID string) ([]models.ScenarioPackaging, error) {
	items := []models.ScenarioPackaging{}
	for _, l := range m.links {
		if l.ScenarioID == scenarioID {
			items = append(items, l)
		}
	}
	return items, nil
}

func (m *memStore) CountScenarioPackaging(ctx context.Context, scenarioID string) (int, error) {
	items, _ := m.ListScenarioPackaging(ctx, scenarioID)
	return len(items), nil
}

func (m *memStore) AddScenarioPackaging(ctx context.Context, scenarioID string, items []models.ScenarioPackagingItem, positions []int, creatorID *string) ([]models.ScenarioPackaging, error) {
	return []models.ScenarioPackaging{}, nil
}

func (m *memStore) GetScenarioPackaging(ctx context.Context, id, scenarioID string) (models.ScenarioPackaging, error) {
	l, ok := m.links[id]
	if !ok || l.ScenarioID != scenarioID {
		return models.ScenarioPackaging{}, db.ErrNotFound
	}
	return l, nil
}

func (m *memStore) DeleteScenarioPackaging(ctx context.Context, id, scenarioID string) error {
	l, ok := m.links[id]
	if !ok || l.ScenarioID != scenarioID {
		return db.ErrNotFound
	}
	delete(m.links, id)
	return nil
}

func (m *memStore) ListLocations(ctx context.Context, q string, page, pageSize int) ([]models.Location, int, error) {
	return []models.Location{}, 0, nil
}

func (m *memStore) GetLocation(ctx context.Context, id string) (models.Location, error) {
	l, ok := m.locations[id]
	if !ok {
		return models.Location{}, db.ErrNotFound
	}
	return l, nil
}

func (m *memStore) CreateLocation(ctx context.Context, req models.CreateLocationRequest, creatorEmail *string) (models.Location, error) {
	return models.Location{}, nil
}

func (m *memStore) UpdateLocation(ctx context.Context, id string, req models.UpdateLocationRequest, modifierID *string) (models.Location, error) {
	l, ok := m.locations[id]
	if !ok {
		return models.Location{}, db.ErrNotFound
	}
	return l, nil
}

func (m *memStore) DeleteLocation(ctx context.Context, id string) (models.Location, error) {
	l, ok := m.locations[id]
	if !ok {
		return models.Location{}, db.ErrNotFound
	}
	delete(m.locations, id)
	return l, nil
}

func (m *memStore) UserEmailExists(ctx context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) GetUserByEmailWithHash(ctx context.Context, email string) (models.User, *string, error) {
	return models.User{}, nil, db.ErrNotFound
}

func (m *memStore) RegisterUser(ctx context.Context, email, nome, passwordHash string) (models.User, error) {
	return models.User{}, nil
}

func (m *memStore) CreateUser(ctx context.Context, req models.CreateUserRequest, senhaHash *string) (models.User, error) {
	return models.User{}, nil
}

func (m *memStore) ListUsers(ctx context.Context, params models.UserListParams) ([]models.User, int, error) {
	return []models.User{}, 0, nil
}

func (m *memStore) GetUser(ctx context.Context, id string) (models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return models.User{}, db.ErrNotFound
	}
	return u, nil
}

func (m *memStore) UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest, senhaHash *string) (models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return models.User{}, db.ErrNotFound
	}
	return u, nil
}

func (m *memStore) DeactivateUser(ctx context.Context, id string) (models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return models.User{}, db.ErrNotFound
	}
	u.Status = "inativo"
	m.users[id] = u
	return u, nil
}

func (m *memStore) TouchLastAccess(ctx context.Context, id string) error { return nil }
