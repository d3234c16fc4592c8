package client

import "encoding/json"

// ConfirmRequest is the body of POST /api/confirmar-presenca.
type ConfirmRequest struct {
	Name       string   `json:"nome"`
	Companions []string `json:"acompanhantes,omitempty"`
}

// FieldFlags marks which fields a rejection refers to.
type FieldFlags struct {
	Name       bool   `json:"nome,omitempty"`
	Companions []bool `json:"acompanhantes,omitempty"`
}

// Flagged reports whether the companion at position i (0-based) is marked.
func (f *FieldFlags) Flagged(i int) bool {
	return f != nil && i >= 0 && i < len(f.Companions) && f.Companions[i]
}

// ConfirmResponse is the body returned by the confirmation endpoint.
type ConfirmResponse struct {
	Success           bool            `json:"success"`
	Message           string          `json:"message,omitempty"`
	GiftSuggestions   json.RawMessage `json:"sugestoes_presentes,omitempty"`
	BlockedName       bool            `json:"nome_bloqueado,omitempty"`
	BlockedCompanions []bool          `json:"acompanhantes_bloqueados,omitempty"`
	Duplicates        *FieldFlags     `json:"duplicatas,omitempty"`
	EmptyFields       *FieldFlags     `json:"campos_vazios,omitempty"`
}

// ConfirmResult pairs the decoded body with the HTTP status.
type ConfirmResult struct {
	StatusCode int
	Body       ConfirmResponse
}

// OK reports whether the server accepted the confirmation.
func (r *ConfirmResult) OK() bool {
	return isSuccessStatus(r.StatusCode) && r.Body.Success
}

// UploadRequest is the body of POST /api/fotos/upload.
type UploadRequest struct {
	ImageData string `json:"imageData"`
	FileName  string `json:"fileName"`
	MimeType  string `json:"mimeType"`
}

// UploadResponse is the body returned by the upload endpoint.
type UploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// UploadResult pairs the decoded body with the HTTP status.
type UploadResult struct {
	StatusCode int
	Body       UploadResponse
}

// OK reports whether the server stored the photo.
func (r *UploadResult) OK() bool {
	return isSuccessStatus(r.StatusCode) && r.Body.Success
}

func isSuccessStatus(code int) bool {
	return code >= 200 && code < 300
}
