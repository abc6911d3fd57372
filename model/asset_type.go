package model

import "github.com/samber/lo"

// AssetType is one option in the asset type dropdown. AspectRatio uses the
// ratio grammar of the generation endpoint.
type AssetType struct {
	Id          string `json:"id"`
	Label       string `json:"label"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
}

var AssetTypes = []AssetType{
	{Id: "social_media_post", Label: "Social Media Post", AspectRatio: "1:1"},
	{Id: "story", Label: "Story Cover", AspectRatio: "9:16"},
	{Id: "flyer", Label: "Flyer", AspectRatio: "3:4"},
	{Id: "poster", Label: "Poster", AspectRatio: "3:4"},
	{Id: "banner", Label: "Web Banner", AspectRatio: "16:9"},
	{Id: "business_card", Label: "Business Card", AspectRatio: "16:9"},
}

// FindAssetType looks up a catalog entry. Unknown ids are still accepted by
// the API, the catalog only enriches known ones.
func FindAssetType(id string) (AssetType, bool) {
	return lo.Find(AssetTypes, func(t AssetType) bool {
		return t.Id == id
	})
}

// AssetTypeLabel returns the display label for known ids and the raw id
// otherwise.
func AssetTypeLabel(id string) string {
	if t, ok := FindAssetType(id); ok {
		return t.Label
	}
	return id
}
