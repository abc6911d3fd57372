package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"

	"github.com/brandboost-ai/brandboost/common"
	"github.com/brandboost-ai/brandboost/common/config"
	"github.com/brandboost-ai/brandboost/common/helper"
	"github.com/brandboost-ai/brandboost/common/logger"
	"github.com/brandboost-ai/brandboost/model"
	"github.com/brandboost-ai/brandboost/prompt"
	"github.com/brandboost-ai/brandboost/service"
)

type Adaptor struct {
	client *http.Client
}

func NewAdaptor() (*Adaptor, error) {
	client, err := service.GetHttpClientWithProxy(config.OutboundProxy)
	if err != nil {
		return nil, errors.Wrap(err, "build outbound http client")
	}
	return &Adaptor{client: client}, nil
}

func (a *Adaptor) GetRequestURL() string {
	return fmt.Sprintf("%s/%s/models/%s:%s", config.GeminiBaseURL, config.GeminiVersion, config.GeminiModel, "generateContent")
}

func (a *Adaptor) SetupRequestHeader(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-goog-api-key", config.GeminiAPIKey)
}

// ConvertRequest maps assembled prompt segments onto the wire format. Both
// response modalities are always requested; the aspect ratio rides along
// when the asset type knows one.
func (a *Adaptor) ConvertRequest(segments []prompt.Segment, aspectRatio string) *ChatRequest {
	parts := make([]Part, 0, len(segments))
	for _, segment := range segments {
		if segment.Image != nil {
			parts = append(parts, Part{
				InlineData: &InlineData{
					MimeType: segment.Image.MimeType,
					Data:     base64.StdEncoding.EncodeToString(segment.Image.Data),
				},
			})
			continue
		}
		parts = append(parts, Part{Text: segment.Text})
	}

	request := &ChatRequest{
		Contents: []ChatContent{
			{
				Role:  "user",
				Parts: parts,
			},
		},
		SafetySettings: []ChatSafetySettings{
			{
				Category:  "HARM_CATEGORY_HARASSMENT",
				Threshold: config.GeminiSafetySetting,
			},
			{
				Category:  "HARM_CATEGORY_HATE_SPEECH",
				Threshold: config.GeminiSafetySetting,
			},
			{
				Category:  "HARM_CATEGORY_SEXUALLY_EXPLICIT",
				Threshold: config.GeminiSafetySetting,
			},
			{
				Category:  "HARM_CATEGORY_DANGEROUS_CONTENT",
				Threshold: config.GeminiSafetySetting,
			},
		},
		GenerationConfig: ChatGenerationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	}
	if aspectRatio != "" {
		request.GenerationConfig.ImageConfig = &ImageConfig{AspectRatio: aspectRatio}
	}
	return request
}

// DoRequest performs the single outbound generation call. There is no retry:
// whatever comes back decides the request.
func (a *Adaptor) DoRequest(ctx context.Context, request *ChatRequest) (*model.GenerationResult, *model.ErrorWithStatusCode) {
	startTime := time.Now()

	if config.DebugEnabled {
		if printable, err := json.Marshal(printableRequest(request)); err == nil {
			logger.Debugf(ctx, "generation request: %s", printable)
		}
	}

	jsonBytes, err := json.Marshal(request)
	if err != nil {
		return nil, model.ErrorWrapper(err, "marshal_generation_request_failed", http.StatusInternalServerError)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(config.GenerationTimeout)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.GetRequestURL(), bytes.NewBuffer(jsonBytes))
	if err != nil {
		return nil, model.ErrorWrapper(err, "new_request_failed", http.StatusInternalServerError)
	}
	a.SetupRequestHeader(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, model.ErrorWrapper(err, "do_request_failed", http.StatusBadGateway)
	}
	defer resp.Body.Close()

	result, respErr := a.DoResponse(ctx, resp)
	if respErr != nil {
		return nil, respErr
	}
	result.Duration = math.Round(time.Since(startTime).Seconds()*1000) / 1000
	return result, nil
}

// DoResponse decodes the upstream answer into a result. Anything without
// inline image data counts as a failed generation.
func (a *Adaptor) DoResponse(ctx context.Context, resp *http.Response) (*model.GenerationResult, *model.ErrorWithStatusCode) {
	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, model.ErrorWrapper(err, "read_response_body_failed", http.StatusInternalServerError)
	}

	logger.Infof(ctx, "generation response received, status code: %d", resp.StatusCode)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		logger.Errorf(ctx, "generation endpoint returned status %d, body: %s",
			resp.StatusCode, common.TruncateString(string(responseBody), 1024))

		var errorResponse ErrorResponse
		if err := json.Unmarshal(responseBody, &errorResponse); err == nil && errorResponse.Error.Message != "" {
			return nil, model.ErrorWrapper(
				fmt.Errorf("upstream status %d: %s", resp.StatusCode, errorResponse.Error.Message),
				"gemini_"+strings.ToLower(errorResponse.Error.Status),
				resp.StatusCode,
			)
		}
		return nil, model.ErrorWrapper(
			fmt.Errorf("upstream status %d", resp.StatusCode),
			"gemini_api_error",
			resp.StatusCode,
		)
	}

	var chatResponse ChatResponse
	if err := json.Unmarshal(responseBody, &chatResponse); err != nil {
		return nil, model.ErrorWrapper(err, "unmarshal_response_failed", http.StatusInternalServerError)
	}

	if chatResponse.PromptFeedback.BlockReason != "" {
		return nil, model.ErrorWrapper(
			fmt.Errorf("prompt blocked by the model: %s", chatResponse.PromptFeedback.BlockReason),
			"content_policy_violation",
			http.StatusBadRequest,
		)
	}
	if len(chatResponse.Candidates) == 0 {
		return nil, model.ErrorWrapper(errors.New("no candidates returned"), "empty_response", http.StatusBadGateway)
	}

	var asset *model.ImageBlob
	var commentary []string
	for _, candidate := range chatResponse.Candidates {
		if candidate.FinishReason != "" && candidate.FinishReason != "STOP" {
			logger.Warnf(ctx, "candidate %d finished with reason %s", candidate.Index, candidate.FinishReason)
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				if asset != nil {
					continue
				}
				data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
				if err != nil {
					return nil, model.ErrorWrapper(err, "decode_image_failed", http.StatusInternalServerError)
				}
				mimeType := part.InlineData.MimeType
				if mimeType == "" {
					mimeType = "image/png"
				}
				asset = model.NewImageBlob(mimeType, data)
			} else if part.Text != "" {
				commentary = append(commentary, part.Text)
			}
		}
	}

	if asset == nil {
		return nil, model.ErrorWrapper(errors.New("no image data in response"), "no_image_generated", http.StatusBadGateway)
	}

	usage := chatResponse.UsageMetadata
	logger.Infof(ctx, "generation usage: total_tokens=%d, input_tokens=%d, output_tokens=%d",
		usage.TotalTokenCount, usage.PromptTokenCount, usage.CandidatesTokenCount)

	return &model.GenerationResult{
		Asset:      asset,
		Commentary: strings.Join(commentary, "\n"),
		Model:      helper.AssignOrDefault(chatResponse.ModelVersion, config.GeminiModel),
	}, nil
}

// printableRequest deep copies the request and truncates inline data so the
// debug log never carries whole encoded images.
func printableRequest(request *ChatRequest) *ChatRequest {
	var clone ChatRequest
	if err := copier.CopyWithOption(&clone, request, copier.Option{DeepCopy: true}); err != nil {
		return &ChatRequest{}
	}
	for i := range clone.Contents {
		for j := range clone.Contents[i].Parts {
			if part := &clone.Contents[i].Parts[j]; part.InlineData != nil {
				part.InlineData.Data = common.TruncateString(part.InlineData.Data, 64)
			}
		}
	}
	return &clone
}
