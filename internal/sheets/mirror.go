package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/logging"
	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/models"
)

// Outcome classifies one mirror attempt. Mirror writes are at-most-once:
// a failure is logged and dropped, never retried or queued.
type Outcome int

const (
	// OutcomeSent means the spreadsheet relay acknowledged the row.
	OutcomeSent Outcome = iota
	// OutcomeSkipped means no relay is configured (degraded mode).
	OutcomeSkipped
	// OutcomeFailed means the relay rejected the row or the call failed.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSent:
		return "sent"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Mirror forwards newly created rows to the spreadsheet relay (an Apps
// Script webhook). The spreadsheet is a convenience copy, not a system of
// record; every method returns an Outcome and never an error.
type Mirror struct {
	webhookURL string
	client     *http.Client
}

// NewMirror builds the mirror from SHEETS_WEBHOOK_URL. When the variable
// is unset the mirror runs in degraded mode: one warning here, then every
// append is a silent skip.
func NewMirror() *Mirror {
	url := os.Getenv("SHEETS_WEBHOOK_URL")
	if url == "" {
		logging.LogKV("warn", "sheets mirror disabled", map[string]interface{}{
			"reason": "SHEETS_WEBHOOK_URL not set",
		})
	}
	return &Mirror{
		webhookURL: url,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// NewMirrorWithURL builds a mirror against an explicit relay endpoint.
func NewMirrorWithURL(url string, client *http.Client) *Mirror {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Mirror{webhookURL: url, client: client}
}

// Enabled reports whether a relay endpoint is configured.
func (m *Mirror) Enabled() bool {
	return m != nil && m.webhookURL != ""
}

func (m *Mirror) post(ctx context.Context, action string, row []string) Outcome {
	if !m.Enabled() {
		return OutcomeSkipped
	}

	payload := map[string]interface{}{
		"action": action,
		"values": [][]string{row},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		logging.LogKV("error", "sheets mirror marshal failed", map[string]interface{}{
			"action": action, "error": err.Error(),
		})
		return OutcomeFailed
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.webhookURL, bytes.NewReader(body))
	if err != nil {
		logging.LogKV("error", "sheets mirror request build failed", map[string]interface{}{
			"action": action, "error": err.Error(),
		})
		return OutcomeFailed
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		logging.LogKV("error", "sheets mirror call failed", map[string]interface{}{
			"action": action, "error": err.Error(),
		})
		return OutcomeFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logging.LogKV("error", "sheets mirror rejected row", map[string]interface{}{
			"action": action, "status": resp.StatusCode, "body": string(respBody),
		})
		return OutcomeFailed
	}

	return OutcomeSent
}

// AppendPackaging mirrors a packaging row to the Embalagens tab. Column
// order is the tab's fixed 20-column contract (A through T); criado_por
// carries the creator's email, not the store uuid.
func (m *Mirror) AppendPackaging(ctx context.Context, p models.Packaging, creatorEmail *string) Outcome {
	row := []string{
		p.ID,
		p.Codigo,
		p.Nome,
		strOr(p.Marca),
		strOr(p.Material),
		strOr(p.Dimensoes),
		strOr(p.Pais),
		strOr(p.DataCadastro),
		strOr(p.Grafica),
		strOr(p.URLImagem),
		strings.Join(p.Tags, ", "),
		strOr(p.Localizacao),
		strOr(p.Eventos),
		strOr(p.Livros),
		strOr(p.Observacoes),
		p.Status,
		strOr(creatorEmail),
		timeOr(p.DataCriacao),
		strOr(p.ModificadoPor),
		timeOr(p.DataModificacao),
	}
	return m.post(ctx, "appendPackaging", row)
}

// AppendScenario mirrors a scenario row to the Scenarios tab (11 columns,
// A through K).
func (m *Mirror) AppendScenario(ctx context.Context, s models.Scenario, creatorEmail *string) Outcome {
	row := []string{
		s.ID,
		s.Codigo,
		s.Nome,
		strOr(s.Descricao),
		strOr(s.Pais),
		strOr(s.Local),
		strOr(s.Data),
		strOr(s.URLImagem),
		strings.Join(s.Tags, ", "),
		strOr(creatorEmail),
		timeOr(s.DataCriacao),
	}
	return m.post(ctx, "appendScenario", row)
}

// AppendScenarioPackaging mirrors one pivot row to the ScenarioPackaging
// tab (7 columns, A through G).
func (m *Mirror) AppendScenarioPackaging(ctx context.Context, l models.ScenarioPackaging, creatorEmail *string) Outcome {
	row := []string{
		l.ID,
		l.ScenarioID,
		l.PackagingID,
		strconv.Itoa(l.Posicao),
		strOr(l.Observacoes),
		l.DataCriacao.UTC().Format(time.RFC3339),
		strOr(creatorEmail),
	}
	return m.post(ctx, "appendScenarioPackaging", row)
}

// AppendUser mirrors an account row to the Usuarios tab (7 columns).
func (m *Mirror) AppendUser(ctx context.Context, u models.User) Outcome {
	row := []string{
		u.Email,
		u.Nome,
		strOr(u.NivelAcesso),
		strOr(u.EquipeID),
		u.Status,
		u.DataCriacao.UTC().Format(time.RFC3339),
		timeOr(u.UltimoAcesso),
	}
	return m.post(ctx, "appendUser", row)
}

// AppendLocation mirrors a location row to the Locations tab (6 columns).
func (m *Mirror) AppendLocation(ctx context.Context, l models.Location) Outcome {
	row := []string{
		l.ID,
		l.Code,
		l.Building,
		strOr(l.Description),
		l.CreatedAt.UTC().Format(time.RFC3339),
		strOr(l.CreatedBy),
	}
	return m.post(ctx, "appendLocation", row)
}

func strOr(s *string) string {
	if s != nil {
		return *s
	}
	return ""
}

func timeOr(t *time.Time) string {
	if t != nil {
		return t.UTC().Format(time.RFC3339)
	}
	return ""
}
