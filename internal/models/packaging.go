package models

import "time"

// Packaging is a catalogued packaging sample. JSON field names follow the
// column names the dashboard and the spreadsheet already use.
type Packaging struct {
	ID              string     `json:"id"`
	Codigo          string     `json:"codigo"`
	Nome            string     `json:"nome"`
	Marca           *string    `json:"marca"`
	Material        *string    `json:"material"`
	Dimensoes       *string    `json:"dimensoes"`
	Pais            *string    `json:"pais"`
	DataCadastro    *string    `json:"data_cadastro"`
	Grafica         *string    `json:"grafica"`
	URLImagem       *string    `json:"url_imagem"`
	Tags            []string   `json:"tags"`
	Localizacao     *string    `json:"localizacao"`
	Eventos         *string    `json:"eventos"`
	Livros          *string    `json:"livros"`
	Observacoes     *string    `json:"observacoes"`
	Status          string     `json:"status"`
	CriadoPor       *string    `json:"criado_por"`
	DataCriacao     *time.Time `json:"data_criacao"`
	ModificadoPor   *string    `json:"modificado_por"`
	DataModificacao *time.Time `json:"data_modificacao"`
}

// PackagingSummary is the reduced shape embedded in scenario link rows.
type PackagingSummary struct {
	ID       string  `json:"id"`
	Codigo   string  `json:"codigo"`
	Nome     string  `json:"nome"`
	Marca    *string `json:"marca"`
	Material *string `json:"material"`
	Pais     *string `json:"pais"`
}

// PackagingListParams carries the supported list filters.
type PackagingListParams struct {
	Q        string
	Status   string
	Material string
	Pais     string
	Tag      string
	Page     int
	PageSize int
}

// CreatePackagingRequest is the POST /packaging body.
type CreatePackagingRequest struct {
	Codigo       string     `json:"codigo"`
	Nome         string     `json:"nome"`
	Marca        *string    `json:"marca"`
	Material     *string    `json:"material"`
	Dimensoes    *string    `json:"dimensoes"`
	Pais         *string    `json:"pais"`
	DataCadastro *string    `json:"data_cadastro"`
	Grafica      *string    `json:"grafica"`
	URLImagem    *string    `json:"url_imagem"`
	Tags         StringList `json:"tags"`
	Localizacao  *string    `json:"localizacao"`
	Eventos      *string    `json:"eventos"`
	Livros       *string    `json:"livros"`
	Observacoes  *string    `json:"observacoes"`
	Status       string     `json:"status"`
}

// UpdatePackagingRequest is the PATCH /packaging/:id body. Only fields
// present in the request are written; a field set to "" clears the value.
type UpdatePackagingRequest struct {
	Codigo       *string     `json:"codigo"`
	Nome         *string     `json:"nome"`
	Marca        *string     `json:"marca"`
	Material     *string     `json:"material"`
	Dimensoes    *string     `json:"dimensoes"`
	Pais         *string     `json:"pais"`
	DataCadastro *string     `json:"data_cadastro"`
	Grafica      *string     `json:"grafica"`
	URLImagem    *string     `json:"url_imagem"`
	Tags         *StringList `json:"tags"`
	Localizacao  *string     `json:"localizacao"`
	Eventos      *string     `json:"eventos"`
	Livros       *string     `json:"livros"`
	Observacoes  *string     `json:"observacoes"`
	Status       *string     `json:"status"`
}
