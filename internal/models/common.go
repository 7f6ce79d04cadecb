package models

import (
	"encoding/json"
	"strings"
)

// Pagination describes the paging block returned by every list endpoint.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes totalPages from the row count. An empty result
// still reports one page so clients always have a valid page range.
func NewPagination(page, pageSize, total int) Pagination {
	totalPages := 1
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// StringList accepts either a JSON array of strings or a single
// comma-joined string on input. The dashboard sends both shapes for the
// tags field; it always marshals back as a plain array.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*s = arr
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	if strings.TrimSpace(joined) == "" {
		*s = nil
		return nil
	}

	parts := strings.Split(joined, ",")
	out := make(StringList, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	*s = out
	return nil
}

// ErrorResponse is the body of every non-2xx reply. Internal details are
// logged server-side and never included here.
type ErrorResponse struct {
	Error string `json:"error"`
}
