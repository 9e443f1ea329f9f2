package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrCacheMiss indicates no cached entry was found.
var ErrCacheMiss = errors.New("cache miss")

// CacheKey derives a stable key from every field that influences a completion.
func CacheKey(req *CompletionRequest) string {
	parts := make([]string, 0, len(req.Messages)+3)

	parts = append(parts,
		fmt.Sprintf("model: %s", req.Model),
		fmt.Sprintf("temperature: %g", req.Temperature),
		fmt.Sprintf("max_tokens: %d", req.MaxTokens),
	)
	for _, msg := range req.Messages {
		parts = append(parts, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
	}

	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return fmt.Sprintf("completion:%s", hex.EncodeToString(hash[:]))
}
