package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer derives cache keys.
type Keyer interface {
	// ResultKey identifies a solve result for a network (by content hash)
	// and the options that influence the answer.
	ResultKey(networkHash string, opts ResultKeyOpts) string
}

// ResultKeyOpts lists the solve options that change the result. Worker
// count is deliberately absent: results do not depend on it.
type ResultKeyOpts struct {
	Agents  int    `json:"agents"`
	Budget  int    `json:"budget"`
	Start   string `json:"start"`
	Balance int    `json:"balance"`
	Plan    bool   `json:"plan"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ResultKey returns "result:<sha256(networkHash, opts)>".
func (DefaultKeyer) ResultKey(networkHash string, opts ResultKeyOpts) string {
	return hashKey("result", networkHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
