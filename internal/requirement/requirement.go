// Package requirement turns a job posting's free-text sections into a
// flat list of discrete requirement strings, using a classify-then-filter
// pass over each candidate line: a noise filter drops structural and
// low-signal lines, a signal filter keeps anything that plausibly names a
// skill or responsibility.
package requirement

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minLen and the skip-list below are the noise filter's length and
// phrase thresholds.
const minLen = 15

var (
	sentenceSplitRe = regexp.MustCompile(`([.!?])\s+`)
	bulletPrefixRe  = regexp.MustCompile(`^[\s]*[-*•▪●]\s*`)

	// actionVerbRe matches the configured action-verb signal set.
	actionVerbRe = regexp.MustCompile(`(?i)\b(develop|build|design|implement|architect|deploy|debug|test|optimize|integrate|maintain|analyze|evaluate|document)\b`)
)

// defaultSkipPhrases is the ~20-entry default noise skip list.
var defaultSkipPhrases = []string{
	"strong communication",
	"team player",
	"attention to detail",
	"problem solving",
	"time management",
	"organizational skills",
	"interpersonal skills",
	"written communication",
	"verbal communication",
	"self-motivated",
	"quick learner",
	"work independently",
	"work in a team",
	"fast-paced environment",
	"strong work ethic",
	"commitment to quality",
	"strong technical writing",
	"technical writing skills",
	"strong motivation",
	"quality and achieving deadlines",
}

// Extractor classifies posting lines into requirement lines vs. noise.
// techHit supplies the tech-term signal (typically lexicon.Lexicon.Contains);
// Extractor itself holds no vocabulary.
type Extractor struct {
	skipPhrases []string
	techHit     func(string) bool
}

// New builds an Extractor. extraSkipPhrases are appended to the default
// ~20-entry skip list; use NewWithSkipList to replace the default list
// entirely.
func New(techHit func(string) bool, extraSkipPhrases []string) *Extractor {
	phrases := make([]string, 0, len(defaultSkipPhrases)+len(extraSkipPhrases))
	phrases = append(phrases, defaultSkipPhrases...)
	phrases = append(phrases, extraSkipPhrases...)
	return &Extractor{skipPhrases: phrases, techHit: techHit}
}

// NewWithSkipList builds an Extractor using exactly skipPhrases, bypassing
// the built-in default list. Used when an external skip-list file is
// configured.
func NewWithSkipList(techHit func(string) bool, skipPhrases []string) *Extractor {
	return &Extractor{skipPhrases: skipPhrases, techHit: techHit}
}

// Extract splits the posting's responsibilities and skills sections into
// candidate requirement strings and filters out noise. jobTitle is used
// to recognize the generic "Experience in <job title> role" filler line.
func (e *Extractor) Extract(jobTitle string, responsibilities, skills string) []string {
	candidates := splitCandidates(responsibilities)
	candidates = append(candidates, splitCandidates(skills)...)

	experienceInRoleRe := experienceInRolePattern(jobTitle)

	var out []string
	for _, raw := range candidates {
		line := normalize(raw)
		if line == "" {
			continue
		}
		if e.isNoise(line, experienceInRoleRe) {
			continue
		}
		if !e.isSignal(line) {
			continue
		}
		out = append(out, line)
	}
	return dedupe(out)
}

func splitCandidates(section string) []string {
	var out []string
	for _, line := range strings.Split(section, "\n") {
		for _, sentence := range strings.Split(sentenceSplitRe.ReplaceAllString(line, "$1\n"), "\n") {
			out = append(out, sentence)
		}
	}
	return out
}

// diacriticStripper collapses accented characters (as found in postings
// copy-pasted from non-English portal templates) to their unaccented
// equivalent before any length/phrase comparison runs.
var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalize(raw string) string {
	line := bulletPrefixRe.ReplaceAllString(raw, "")
	line, _, _ = transform.String(diacriticStripper, line)
	return strings.TrimSpace(line)
}

func experienceInRolePattern(jobTitle string) *regexp.Regexp {
	title := strings.TrimSpace(jobTitle)
	if title == "" {
		return regexp.MustCompile(`(?i)^experience\s+in\s+.+\srole\.?$`)
	}
	return regexp.MustCompile(`(?i)^experience\s+in\s+(a\s+|an\s+)?` + regexp.QuoteMeta(title) + `\s+role\.?$`)
}

// isNoise applies the noise filter: length threshold, trailing section
// colon, skip-list phrases, and the generic "Experience in X role" line.
func (e *Extractor) isNoise(line string, experienceInRoleRe *regexp.Regexp) bool {
	if len(line) < minLen {
		return true
	}
	if strings.HasSuffix(line, ":") {
		return true
	}
	if experienceInRoleRe.MatchString(line) {
		return true
	}
	lower := strings.ToLower(line)
	for _, phrase := range e.skipPhrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}

// isSignal applies the signal filter: a line survives if it names a known
// technology OR contains one of the configured action verbs.
func (e *Extractor) isSignal(line string) bool {
	if e.techHit != nil && e.techHit(line) {
		return true
	}
	return actionVerbRe.MatchString(line)
}

func dedupe(lines []string) []string {
	seen := make(map[string]bool, len(lines))
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		key := strings.ToLower(l)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, l)
	}
	return out
}
