package devapi

// ConfirmRequest mirrors client.ConfirmRequest. Empty names are accepted
// here and rejected by the service with per-field flags.
type ConfirmRequest struct {
	Name       string   `json:"nome" validate:"max=120"`
	Companions []string `json:"acompanhantes" validate:"max=3,dive,max=120"`
}

// UploadRequest mirrors client.UploadRequest.
type UploadRequest struct {
	ImageData string `json:"imageData" validate:"required"`
	FileName  string `json:"fileName" validate:"max=255"`
	MimeType  string `json:"mimeType" validate:"required,eq=image/jpeg"`
}
