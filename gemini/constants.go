package gemini

// https://ai.google.dev/models/gemini

var ImageModelList = []string{
	"gemini-2.0-flash-exp-image-generation",
	"gemini-2.5-flash-image",
	"gemini-2.5-flash-image-preview",
	"gemini-3-pro-image-preview",
}

func IsImageModel(model string) bool {
	for _, m := range ImageModelList {
		if m == model {
			return true
		}
	}
	return false
}
