package gemini

type ChatRequest struct {
	Contents         []ChatContent        `json:"contents"`
	SafetySettings   []ChatSafetySettings `json:"safetySettings,omitempty"`
	GenerationConfig ChatGenerationConfig `json:"generationConfig,omitempty"`
}

type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

type ChatContent struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type ChatSafetySettings struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type ChatGenerationConfig struct {
	Temperature        float64      `json:"temperature,omitempty"`
	TopP               float64      `json:"topP,omitempty"`
	MaxOutputTokens    int          `json:"maxOutputTokens,omitempty"`
	CandidateCount     int          `json:"candidateCount,omitempty"`
	ResponseModalities []string     `json:"responseModalities,omitempty"`
	ImageConfig        *ImageConfig `json:"imageConfig,omitempty"`
}

type ImageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
	ImageSize   string `json:"imageSize,omitempty"`
}

type ChatCandidate struct {
	Content      ChatContent `json:"content"`
	FinishReason string      `json:"finishReason,omitempty"`
	Index        int64       `json:"index,omitempty"`
}

type ChatPromptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

type TokenDetails struct {
	Modality   string `json:"modality"`
	TokenCount int    `json:"tokenCount"`
}

type UsageMetadata struct {
	PromptTokenCount        int            `json:"promptTokenCount,omitempty"`
	CandidatesTokenCount    int            `json:"candidatesTokenCount,omitempty"`
	TotalTokenCount         int            `json:"totalTokenCount,omitempty"`
	PromptTokensDetails     []TokenDetails `json:"promptTokensDetails,omitempty"`
	CandidatesTokensDetails []TokenDetails `json:"candidatesTokensDetails,omitempty"`
}

type ChatResponse struct {
	Candidates     []ChatCandidate    `json:"candidates"`
	PromptFeedback ChatPromptFeedback `json:"promptFeedback,omitempty"`
	ModelVersion   string             `json:"modelVersion,omitempty"`
	UsageMetadata  UsageMetadata      `json:"usageMetadata,omitempty"`
}

type ErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
