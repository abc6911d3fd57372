package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/brandboost-ai/brandboost/model"
)

// Segment is one element of the assembled prompt: either text or an inline
// image. Segments map 1:1 onto generation request parts.
type Segment struct {
	Text  string           `json:"text,omitempty"`
	Image *model.ImageBlob `json:"image,omitempty"`
}

func TextSegment(text string) Segment {
	return Segment{Text: text}
}

func ImageSegment(blob *model.ImageBlob) Segment {
	return Segment{Image: blob}
}

const styleOnlyInstruction = "Use the style reference images only as stylistic inspiration " +
	"for mood, color and composition. Never copy their content, subjects or text."

// Build turns a validated request into the ordered segment sequence: the
// design brief, the labeled logo, the labeled reference images, then the
// rendering instructions. Optional fields that are absent leave no trace in
// the text.
func Build(req *model.GenerationRequest) ([]Segment, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	if strings.TrimSpace(req.BusinessName) == "" ||
		strings.TrimSpace(req.AssetType) == "" ||
		strings.TrimSpace(req.Description) == "" {
		return nil, errors.New("business name, asset type and description are required")
	}
	if req.Logo == nil || len(req.Logo.Data) == 0 {
		return nil, errors.New("logo is required")
	}

	var segments []Segment

	var brief strings.Builder
	fmt.Fprintf(&brief, "Create a professional %s marketing asset for the business %q.\n\n",
		strings.ToLower(model.AssetTypeLabel(req.AssetType)), req.BusinessName)
	fmt.Fprintf(&brief, "Business description: %s\n", req.Description)
	if req.CustomText != "" {
		fmt.Fprintf(&brief, "Render this text on the asset exactly as written: %q\n", req.CustomText)
	}
	if req.ColorPalette != "" {
		fmt.Fprintf(&brief, "Color palette to follow: %s\n", req.ColorPalette)
	}
	segments = append(segments, TextSegment(brief.String()))

	segments = append(segments, TextSegment("Business logo:"), ImageSegment(req.Logo))

	references := lo.Compact([]*model.ImageBlob{req.ReferenceImage1, req.ReferenceImage2})
	for i, ref := range references {
		segments = append(segments,
			TextSegment(fmt.Sprintf("Style reference %d:", i+1)),
			ImageSegment(ref))
	}

	var instructions strings.Builder
	instructions.WriteString("Incorporate the provided business logo prominently and without distortion.")
	if len(references) > 0 {
		instructions.WriteString(" ")
		instructions.WriteString(styleOnlyInstruction)
	}
	instructions.WriteString(" The result must look polished and ready for real marketing use.")
	segments = append(segments, TextSegment(instructions.String()))

	return segments, nil
}

// RenderText flattens the sequence for previews and logging. Image segments
// become a placeholder so no encoded bytes leak out.
func RenderText(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s.Image != nil {
			parts = append(parts, "[image]")
			continue
		}
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, "\n")
}

func ImageCount(segments []Segment) int {
	return lo.CountBy(segments, func(s Segment) bool {
		return s.Image != nil
	})
}
