package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata contains metadata about an ingested policy page
type Metadata struct {
	URL            string   `json:"url,omitempty"`
	Timestamp      string   `json:"timestamp"`                 // RFC3339 format
	Hash           string   `json:"hash"`                      // SHA256 hex digest
	Source         string   `json:"source,omitempty"`          // Detected publisher
	State          string   `json:"state,omitempty"`           // Two-letter state code
	Title          string   `json:"title,omitempty"`           // Page title
	ExtractedLinks []string `json:"extracted_links,omitempty"` // Links found on the page
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content string, url string) *Metadata {
	return &Metadata{
		URL:       url,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
