package gemini

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandboost-ai/brandboost/common/config"
	"github.com/brandboost-ai/brandboost/model"
	"github.com/brandboost-ai/brandboost/prompt"
)

func testSegments() []prompt.Segment {
	return []prompt.Segment{
		prompt.TextSegment("Design brief goes here."),
		prompt.TextSegment("Business logo:"),
		prompt.ImageSegment(model.NewImageBlob("image/png", []byte{0x89, 0x50, 0x4e, 0x47})),
		prompt.TextSegment("Make it look good."),
	}
}

func TestConvertRequest(t *testing.T) {
	adaptor := &Adaptor{}
	request := adaptor.ConvertRequest(testSegments(), "1:1")

	require.Len(t, request.Contents, 1)
	assert.Equal(t, "user", request.Contents[0].Role)

	parts := request.Contents[0].Parts
	require.Len(t, parts, 4)
	assert.Equal(t, "Design brief goes here.", parts[0].Text)
	assert.Nil(t, parts[0].InlineData)
	require.NotNil(t, parts[2].InlineData)
	assert.Equal(t, "image/png", parts[2].InlineData.MimeType)
	assert.Equal(t,
		base64.StdEncoding.EncodeToString([]byte{0x89, 0x50, 0x4e, 0x47}),
		parts[2].InlineData.Data)

	require.Len(t, request.SafetySettings, 4)
	for _, setting := range request.SafetySettings {
		assert.Equal(t, config.GeminiSafetySetting, setting.Threshold)
	}

	assert.Equal(t, []string{"TEXT", "IMAGE"}, request.GenerationConfig.ResponseModalities)
	require.NotNil(t, request.GenerationConfig.ImageConfig)
	assert.Equal(t, "1:1", request.GenerationConfig.ImageConfig.AspectRatio)
}

func TestConvertRequestWithoutAspectRatio(t *testing.T) {
	adaptor := &Adaptor{}
	request := adaptor.ConvertRequest(testSegments(), "")
	assert.Nil(t, request.GenerationConfig.ImageConfig)
}

// withUpstream points the adaptor at a fake generation endpoint and restores
// the configuration afterwards.
func withUpstream(t *testing.T, handler http.HandlerFunc) *Adaptor {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	oldBase, oldKey := config.GeminiBaseURL, config.GeminiAPIKey
	config.GeminiBaseURL = server.URL
	config.GeminiAPIKey = "test-key"
	t.Cleanup(func() {
		config.GeminiBaseURL = oldBase
		config.GeminiAPIKey = oldKey
	})

	return &Adaptor{client: server.Client()}
}

func TestDoRequestSuccess(t *testing.T) {
	imageBytes := []byte{1, 2, 3, 4, 5}
	adaptor := withUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/"+config.GeminiModel+":generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{
				"content": {"parts": [
					{"text": "Here is your asset."},
					{"inlineData": {"mimeType": "image/png", "data": "` +
			base64.StdEncoding.EncodeToString(imageBytes) + `"}}
				]},
				"finishReason": "STOP"
			}],
			"modelVersion": "gemini-img-001",
			"usageMetadata": {"promptTokenCount": 10, "candidatesTokenCount": 20, "totalTokenCount": 30}
		}`))
	})

	result, bizErr := adaptor.DoRequest(context.Background(), adaptor.ConvertRequest(testSegments(), "1:1"))
	require.Nil(t, bizErr)
	require.NotNil(t, result.Asset)
	assert.Equal(t, "image/png", result.Asset.MimeType)
	assert.Equal(t, imageBytes, result.Asset.Data)
	assert.Equal(t, "Here is your asset.", result.Commentary)
	assert.Equal(t, "gemini-img-001", result.Model)
	assert.GreaterOrEqual(t, result.Duration, 0.0)
}

func TestDoRequestNoImageInResponse(t *testing.T) {
	adaptor := withUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{
				"content": {"parts": [{"text": "I cannot draw that."}]},
				"finishReason": "STOP"
			}]
		}`))
	})

	result, bizErr := adaptor.DoRequest(context.Background(), adaptor.ConvertRequest(testSegments(), ""))
	assert.Nil(t, result)
	require.NotNil(t, bizErr)
	assert.Equal(t, "no_image_generated", bizErr.Error.Code)
	assert.Equal(t, http.StatusBadGateway, bizErr.StatusCode)
}

func TestDoRequestBlockedPrompt(t *testing.T) {
	adaptor := withUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"promptFeedback": {"blockReason": "SAFETY"}}`))
	})

	result, bizErr := adaptor.DoRequest(context.Background(), adaptor.ConvertRequest(testSegments(), ""))
	assert.Nil(t, result)
	require.NotNil(t, bizErr)
	assert.Equal(t, "content_policy_violation", bizErr.Error.Code)
	assert.Equal(t, http.StatusBadRequest, bizErr.StatusCode)
}

func TestDoRequestEmptyCandidates(t *testing.T) {
	adaptor := withUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})

	result, bizErr := adaptor.DoRequest(context.Background(), adaptor.ConvertRequest(testSegments(), ""))
	assert.Nil(t, result)
	require.NotNil(t, bizErr)
	assert.Equal(t, "empty_response", bizErr.Error.Code)
	assert.Equal(t, http.StatusBadGateway, bizErr.StatusCode)
}

func TestDoRequestUpstreamError(t *testing.T) {
	adaptor := withUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"code": 429, "message": "quota exhausted", "status": "RESOURCE_EXHAUSTED"}}`))
	})

	result, bizErr := adaptor.DoRequest(context.Background(), adaptor.ConvertRequest(testSegments(), ""))
	assert.Nil(t, result)
	require.NotNil(t, bizErr)
	assert.Equal(t, "gemini_resource_exhausted", bizErr.Error.Code)
	assert.Equal(t, http.StatusTooManyRequests, bizErr.StatusCode)
	assert.Contains(t, bizErr.Error.Message, "quota exhausted")
}

func TestDoRequestUpstreamErrorWithoutEnvelope(t *testing.T) {
	adaptor := withUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`upstream fell over`))
	})

	result, bizErr := adaptor.DoRequest(context.Background(), adaptor.ConvertRequest(testSegments(), ""))
	assert.Nil(t, result)
	require.NotNil(t, bizErr)
	assert.Equal(t, "gemini_api_error", bizErr.Error.Code)
	assert.Equal(t, http.StatusInternalServerError, bizErr.StatusCode)
}

func TestIsImageModel(t *testing.T) {
	assert.True(t, IsImageModel("gemini-2.5-flash-image-preview"))
	assert.False(t, IsImageModel("gemini-1.5-pro"))
}
