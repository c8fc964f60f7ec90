package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// LayoutKeyOpts holds every input that determines a layout.
type LayoutKeyOpts struct {
	Center          [2]int   `json:"center"`
	Sizes           [][2]int `json:"sizes"`
	Count           int      `json:"count"`
	Coefficient     float64  `json:"coefficient"`
	AngleStep       float64  `json:"angle_step"`
	StopOnExhausted bool     `json:"stop_on_exhausted"`
}

// ArtifactKeyOpts holds every render setting that changes an artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Fill       string  `json:"fill"`
	Background string  `json:"background"`
	Outline    string  `json:"outline"`
	Scale      float64 `json:"scale"`
	Quality    int     `json:"quality"`
}

// LayoutKey returns the cache key of a layout.
func LayoutKey(opts LayoutKeyOpts) string {
	return hashKey("layout", opts)
}

// ArtifactKey returns the cache key of an artifact rendered from the
// layout whose serialized form hashes to layoutHash.
func ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
