package config

import (
	"os"
	"strings"
	"time"

	"github.com/brandboost-ai/brandboost/common/env"
	"github.com/google/uuid"
)

var SystemName = env.String("SYSTEM_NAME", "BrandBoost")
var ServerAddress = env.String("SERVER_ADDRESS", "http://localhost:3000")

var ServiceName = env.String("SERVICE_NAME", "brandboost")
var InstanceId = defaultInstanceId()

// Any options with "Secret", "Key" in its name won't be logged.
var SessionSecret = env.String("SESSION_SECRET", uuid.New().String())

var DebugEnabled = strings.ToLower(os.Getenv("DEBUG")) == "true"

var GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
var GeminiBaseURL = env.String("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")
var GeminiVersion = env.String("GEMINI_VERSION", "v1beta")
var GeminiModel = env.String("GEMINI_MODEL", "gemini-2.5-flash-image-preview")
var GeminiSafetySetting = env.String("GEMINI_SAFETY_SETTING", "BLOCK_NONE")

var GenerationTimeout = env.Int("GENERATION_TIMEOUT", 120) // unit is second
var OutboundProxy = env.String("OUTBOUND_PROXY", "")

var MaxImageSizeMB = env.Int("MAX_IMAGE_SIZE_MB", 10)
var MaxImageSizeBytes = int64(MaxImageSizeMB) * 1024 * 1024

var AllowedImageTypes = parseAllowedImageTypes(env.String("ALLOWED_IMAGE_TYPES", "image/png,image/jpeg,image/webp"))

// All duration's unit is seconds
// Shouldn't larger then RateLimitKeyExpirationDuration
var (
	GlobalApiRateLimitNum            = env.Int("GLOBAL_API_RATE_LIMIT", 180)
	GlobalApiRateLimitDuration int64 = 3 * 60

	CriticalRateLimitNum            = env.Int("CRITICAL_RATE_LIMIT", 20)
	CriticalRateLimitDuration int64 = 20 * 60
)

var RateLimitKeyExpirationDuration = 20 * time.Minute

func IsImageTypeAllowed(mimeType string) bool {
	for _, allowed := range AllowedImageTypes {
		if strings.EqualFold(allowed, mimeType) {
			return true
		}
	}
	return false
}

func parseAllowedImageTypes(raw string) []string {
	var types []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			types = append(types, strings.ToLower(t))
		}
	}
	return types
}

func defaultInstanceId() string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		return uuid.New().String()[:8]
	}
	return hostname
}
