// Package lexicon holds the canonical technology vocabulary used by both
// the requirement extractor (signal filter) and the matcher (keyword_match,
// matched/missing technology lists). Entries are externally loadable from
// YAML so an operator can extend coverage without a rebuild.
package lexicon

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/kljensen/snowball"
	"gopkg.in/yaml.v3"
)

// Term is one canonical technology with its recognized aliases.
type Term struct {
	Canonical string   `yaml:"canonical"`
	Aliases   []string `yaml:"aliases"`
}

// entry is a compiled Term ready for matching.
type entry struct {
	canonical string
	pattern   *regexp.Regexp
}

var wordRe = regexp.MustCompile(`[A-Za-z][A-Za-z0-9+#.]*`)

// Lexicon matches free text against a fixed vocabulary of technology terms.
// Multi-word and punctuation-bearing names (like "C++" or "new grad") match
// case-insensitively on word boundaries; single-word alphabetic names also
// match via an English-stemmed token index, so "developing microservices"
// still recognizes "develop" even though the literal string differs.
type Lexicon struct {
	entries    []entry
	stemIndex  map[string]string // snowball stem -> canonical, single-word names only
	canonicals mapset.Set[string]
	hash       string
}

type document struct {
	Terms []Term `yaml:"terms"`
}

// Load parses YAML lexicon data (see assets/technologies.yaml for the
// built-in set) and compiles a word-boundary regex plus a stemmed-token
// fallback per alias.
func Load(data []byte) (*Lexicon, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("lexicon: parsing yaml: %w", err)
	}
	if len(doc.Terms) == 0 {
		return nil, fmt.Errorf("lexicon: no terms defined")
	}

	l := &Lexicon{
		stemIndex:  make(map[string]string),
		canonicals: mapset.NewThreadUnsafeSet[string](),
	}
	for _, t := range doc.Terms {
		l.canonicals.Add(t.Canonical)
		names := append([]string{t.Canonical}, t.Aliases...)
		for _, name := range names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			pat, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
			if err != nil {
				return nil, fmt.Errorf("lexicon: compiling pattern for %q: %w", name, err)
			}
			l.entries = append(l.entries, entry{canonical: t.Canonical, pattern: pat})

			if !strings.ContainsAny(name, " \t") && wordRe.MatchString(name) {
				if stem, err := snowball.Stem(strings.ToLower(name), "english", true); err == nil {
					l.stemIndex[stem] = t.Canonical
				}
			}
		}
	}
	l.hash = fingerprint(data)
	return l, nil
}

// LoadFile reads and parses a lexicon YAML file from disk.
func LoadFile(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lexicon: reading %q: %w", path, err)
	}
	return Load(data)
}

// MatchSet returns the set of canonical technology names mentioned anywhere
// in text, combining exact word-boundary matches with stemmed single-token
// matches.
func (l *Lexicon) MatchSet(text string) mapset.Set[string] {
	out := mapset.NewThreadUnsafeSet[string]()
	for _, e := range l.entries {
		if e.pattern.MatchString(text) {
			out.Add(e.canonical)
		}
	}
	for _, tok := range wordRe.FindAllString(text, -1) {
		stem, err := snowball.Stem(strings.ToLower(tok), "english", true)
		if err != nil {
			continue
		}
		if canonical, ok := l.stemIndex[stem]; ok {
			out.Add(canonical)
		}
	}
	return out
}

// MatchAll returns the set of distinct canonical technology names that
// occur anywhere in text, in canonical-vocabulary order.
func (l *Lexicon) MatchAll(text string) []string {
	matched := l.MatchSet(text)
	out := make([]string, 0, matched.Cardinality())
	for _, e := range l.entries {
		if matched.Contains(e.canonical) {
			out = append(out, e.canonical)
			matched.Remove(e.canonical)
		}
	}
	return out
}

// Contains reports whether text mentions any canonical technology term.
func (l *Lexicon) Contains(text string) bool {
	for _, e := range l.entries {
		if e.pattern.MatchString(text) {
			return true
		}
	}
	for _, tok := range wordRe.FindAllString(text, -1) {
		stem, err := snowball.Stem(strings.ToLower(tok), "english", true)
		if err != nil {
			continue
		}
		if _, ok := l.stemIndex[stem]; ok {
			return true
		}
	}
	return false
}

// Hash returns a fingerprint of the loaded lexicon content, used as one
// input to the matcher's engine-version fingerprint.
func (l *Lexicon) Hash() string { return l.hash }

func fingerprint(data []byte) string {
	return shortHash(data)
}
