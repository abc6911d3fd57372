package model

// GenerationResult carries one generated asset back to the client.
// Nothing about it is stored server side.
type GenerationResult struct {
	Asset      *ImageBlob `json:"asset"`
	Commentary string     `json:"commentary,omitempty"`
	Model      string     `json:"model,omitempty"`
	Duration   float64    `json:"duration,omitempty"`
}
