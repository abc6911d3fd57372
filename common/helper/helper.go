package helper

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GetTimeString() string {
	now := time.Now()
	return fmt.Sprintf("%s%d", now.Format("20060102150405"), now.UnixNano()%1e9)
}

func GetUUID() string {
	code := uuid.New().String()
	code = strings.Replace(code, "-", "", -1)
	return code
}

func GenRequestID() (id string) {
	return GetTimeString() + GetRandomNumberString(8)
}

func GetRandomNumberString(length int) string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	key := make([]byte, length)
	for i := 0; i < length; i++ {
		key[i] = byte(rng.Intn(10) + '0')
	}
	return string(key)
}

func MessageWithRequestId(message string, id string) string {
	return fmt.Sprintf("%s (request id: %s)", message, id)
}

func AssignOrDefault(value string, defaultValue string) string {
	if len(value) != 0 {
		return value
	}
	return defaultValue
}
