package models

import "time"

// Scenario is a photo set captured in the field (a gondola, a shelf, a
// market display). Scenarios are created and read, never edited.
type Scenario struct {
	ID          string     `json:"id"`
	Codigo      string     `json:"codigo"`
	Nome        string     `json:"nome"`
	Descricao   *string    `json:"descricao"`
	Pais        *string    `json:"pais"`
	Local       *string    `json:"local"`
	Data        *string    `json:"data"`
	URLImagem   *string    `json:"url_imagem"`
	Tags        []string   `json:"tags"`
	CriadoPor   *string    `json:"criado_por"`
	DataCriacao *time.Time `json:"data_criacao"`
}

// CreateScenarioRequest is the POST /scenarios body. Codigo is generated
// when blank.
type CreateScenarioRequest struct {
	Codigo    string     `json:"codigo"`
	Nome      string     `json:"nome"`
	Descricao *string    `json:"descricao"`
	Pais      *string    `json:"pais"`
	Local     *string    `json:"local"`
	Data      *string    `json:"data"`
	URLImagem *string    `json:"url_imagem"`
	Tags      StringList `json:"tags"`
}

// ScenarioPackaging is a pivot row binding a packaging sample to a
// scenario with its shelf position.
type ScenarioPackaging struct {
	ID          string            `json:"id"`
	ScenarioID  string            `json:"scenario_id"`
	PackagingID string            `json:"packaging_id"`
	Posicao     int               `json:"posicao"`
	Observacoes *string           `json:"observacoes"`
	DataCriacao time.Time         `json:"data_criacao"`
	CriadoPor   *string           `json:"criado_por"`
	Packaging   *PackagingSummary `json:"packaging,omitempty"`
}

// AddScenarioPackagingRequest is the POST /scenarios/:id/packaging body.
// One request may link many samples at once.
type AddScenarioPackagingRequest struct {
	Items []ScenarioPackagingItem `json:"items"`
}

// ScenarioPackagingItem is one entry of a batch link request. Posicao
// defaults to the next free position when omitted.
type ScenarioPackagingItem struct {
	PackagingID string  `json:"packaging_id"`
	Posicao     *int    `json:"posicao"`
	Observacoes *string `json:"observacoes"`
}
