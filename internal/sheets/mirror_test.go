package sheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/models"
)

type capturedPayload struct {
	Action string     `json:"action"`
	Values [][]string `json:"values"`
}

// captureServer records every relay call and answers with the given status.
func captureServer(t *testing.T, status int, captured *capturedPayload, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("reading relay body: %v", err)
		}
		if err := json.Unmarshal(body, captured); err != nil {
			t.Errorf("decoding relay payload: %v", err)
		}
		w.WriteHeader(status)
	}))
}

func strPtr(s string) *string { return &s }

func TestMirrorSkipsWhenUnconfigured(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	// Empty URL means degraded mode, regardless of reachable relays.
	m := NewMirrorWithURL("", srv.Client())
	if m.Enabled() {
		t.Fatal("mirror with empty URL must not report enabled")
	}

	out := m.AppendLocation(context.Background(), models.Location{ID: "l1", Code: "A1", Building: "Galpão", CreatedAt: time.Now()})
	if out != OutcomeSkipped {
		t.Fatalf("outcome = %s, want skipped", out)
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Fatalf("degraded mirror made %d HTTP calls", n)
	}
}

func TestMirrorNilReceiverSkips(t *testing.T) {
	var m *Mirror
	if m.Enabled() {
		t.Fatal("nil mirror must not report enabled")
	}
}

func TestMirrorReportsFailureOnRejectedRow(t *testing.T) {
	var captured capturedPayload
	var calls int32
	srv := captureServer(t, http.StatusInternalServerError, &captured, &calls)
	defer srv.Close()

	m := NewMirrorWithURL(srv.URL, srv.Client())
	u := models.User{Email: "ana@example.com", Nome: "Ana", Status: "ativo", DataCriacao: time.Now()}
	if out := m.AppendUser(context.Background(), u); out != OutcomeFailed {
		t.Fatalf("outcome = %s, want failed", out)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected exactly one relay call, got %d", calls)
	}
}

func TestMirrorPackagingColumnOrder(t *testing.T) {
	var captured capturedPayload
	var calls int32
	srv := captureServer(t, http.StatusOK, &captured, &calls)
	defer srv.Close()

	created := time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)
	p := models.Packaging{
		ID:           "pkg-1",
		Codigo:       "EMB-001",
		Nome:         "Caixa de Suco",
		Marca:        strPtr("Del Valle"),
		Material:     strPtr("Tetra Pak"),
		Dimensoes:    strPtr("10x5x20"),
		Pais:         strPtr("Brasil"),
		DataCadastro: strPtr("2025-05-20"),
		Grafica:      strPtr("Gráfica X"),
		URLImagem:    strPtr("https://cdn.example.com/p.jpg"),
		Tags:         []string{"Bebidas", "Sucos"},
		Localizacao:  strPtr("A1"),
		Eventos:      strPtr("Feira 2025"),
		Livros:       strPtr("Vol. 2"),
		Observacoes:  strPtr("amassada na base"),
		Status:       "ativo",
		CriadoPor:    strPtr("uuid-should-not-appear"),
		DataCriacao:  &created,
	}

	m := NewMirrorWithURL(srv.URL, srv.Client())
	if got := m.AppendPackaging(context.Background(), p, strPtr("ana@example.com")); got != OutcomeSent {
		t.Fatalf("outcome = %s, want sent", got)
	}

	if captured.Action != "appendPackaging" {
		t.Fatalf("action = %q, want appendPackaging", captured.Action)
	}
	if len(captured.Values) != 1 {
		t.Fatalf("expected a single row, got %d", len(captured.Values))
	}

	row := captured.Values[0]
	want := []string{
		"pkg-1", "EMB-001", "Caixa de Suco", "Del Valle", "Tetra Pak",
		"10x5x20", "Brasil", "2025-05-20", "Gráfica X", "https://cdn.example.com/p.jpg",
		"Bebidas, Sucos", "A1", "Feira 2025", "Vol. 2", "amassada na base",
		"ativo", "ana@example.com", "2025-05-20T12:00:00Z", "", "",
	}
	if len(row) != len(want) {
		t.Fatalf("row has %d columns, want %d: %v", len(row), len(want), row)
	}
	for i := range want {
		if row[i] != want[i] {
			t.Fatalf("column %d = %q, want %q", i, row[i], want[i])
		}
	}
}

func TestMirrorScenarioPackagingRow(t *testing.T) {
	var captured capturedPayload
	var calls int32
	srv := captureServer(t, http.StatusOK, &captured, &calls)
	defer srv.Close()

	m := NewMirrorWithURL(srv.URL, srv.Client())
	link := models.ScenarioPackaging{
		ID:          "link-1",
		ScenarioID:  "scn-1",
		PackagingID: "pkg-1",
		Posicao:     3,
		DataCriacao: time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC),
	}

	if got := m.AppendScenarioPackaging(context.Background(), link, strPtr("ana@example.com")); got != OutcomeSent {
		t.Fatalf("outcome = %s, want sent", got)
	}

	row := captured.Values[0]
	want := []string{"link-1", "scn-1", "pkg-1", "3", "", "2025-05-20T12:00:00Z", "ana@example.com"}
	if len(row) != len(want) {
		t.Fatalf("row has %d columns, want %d: %v", len(row), len(want), row)
	}
	for i := range want {
		if row[i] != want[i] {
			t.Fatalf("column %d = %q, want %q", i, row[i], want[i])
		}
	}
}

func TestOutcomeString(t *testing.T) {
	if OutcomeSent.String() != "sent" || OutcomeSkipped.String() != "skipped" || OutcomeFailed.String() != "failed" {
		t.Fatal("outcome labels changed")
	}
}
