package requirement

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type skipListDoc struct {
	Phrases []string `yaml:"phrases"`
}

// LoadSkipPhrases reads an externally supplied noise skip-list, returning
// the phrases and a content fingerprint (used as one input to the
// matcher's engine-version hash).
func LoadSkipPhrases(path string) ([]string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("requirement: reading skip-list %q: %w", path, err)
	}
	var doc skipListDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, "", fmt.Errorf("requirement: parsing skip-list %q: %w", path, err)
	}
	sum := sha256.Sum256(data)
	return doc.Phrases, hex.EncodeToString(sum[:]), nil
}

// DefaultSkipListHash fingerprints the built-in skip list so a run with no
// external override still has a stable engine-version component.
func DefaultSkipListHash() string {
	h := sha256.New()
	for _, p := range defaultSkipPhrases {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
