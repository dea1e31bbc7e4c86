package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Dump is one captured gst-inspect --print-all output.
type Dump struct {
	ID           int64     `json:"id"`
	SessionID    string    `json:"session_id"`
	CapturedAt   time.Time `json:"captured_at"`
	ToolVersion  string    `json:"tool_version,omitempty"`
	ElementCount int       `json:"element_count"`
	Digest       string    `json:"digest"`
	Content      string    `json:"-"`
}

// Digest returns the hex sha256 of dump content. Identical dumps share a row.
func Digest(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
