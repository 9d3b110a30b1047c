package lexicon

import _ "embed"

//go:embed assets/technologies.yaml
var defaultYAML []byte

// LoadDefault loads the built-in ~80-term technology lexicon.
func LoadDefault() (*Lexicon, error) {
	return Load(defaultYAML)
}
