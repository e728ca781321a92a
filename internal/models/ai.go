package models

// GenerateRequest is the payload of POST /ai/generate.
type GenerateRequest struct {
	InputText string `json:"input_text" validate:"required"`
}

// GenerateResponse carries the raw model output.
type GenerateResponse struct {
	OutputText string `json:"output_text"`
}

// UploadResponse is returned by POST /upload/.
type UploadResponse struct {
	URL string `json:"url"`
}
