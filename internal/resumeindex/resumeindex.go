// Package resumeindex builds and searches the in-memory index of a
// candidate's résumé bullets: one embedding per bullet, and an exact
// inner-product k-NN search over them. The index is rebuilt whenever its
// cache key changes and persisted as a gob blob so repeat runs against an
// unchanged résumé skip re-embedding.
package resumeindex

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/oclaw/coopmatch/internal/embeddings"
	"github.com/oclaw/coopmatch/internal/models"
)

// BulletSplitVersion is bumped whenever the bullet-segmentation rule
// changes; it is one component of the rebuild cache key so a stale index
// segmented under an old rule is never reused silently.
const BulletSplitVersion = 1

var bulletPrefixRe = regexp.MustCompile(`^[\s]*[-*•▪●]\s*`)

// Index holds embedded résumé bullets ready for nearest-neighbor search.
type Index struct {
	ModelID           string
	BulletSplitVersion int
	SourceHash        string
	Bullets           []models.ResumeBullet
}

// CacheKey returns the key this index was (or would be) built under:
// hash(source) || model_id || bullet_split_version, per the rebuild
// policy.
func CacheKey(sourceText string) string {
	return fmt.Sprintf("%s|%s|%d", hashText(sourceText), embeddings.ModelID, BulletSplitVersion)
}

func hashText(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// SplitBullets segments raw résumé text into ordered, independent bullet
// units. Lines are the unit of segmentation; bullet markers are stripped,
// blank lines dropped, and very short fragments (section headers) are
// discarded.
func SplitBullets(text string) []string {
	var out []string
	for _, raw := range strings.Split(text, "\n") {
		line := bulletPrefixRe.ReplaceAllString(raw, "")
		line = strings.TrimSpace(line)
		if len(line) < 10 {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Build segments sourceText into bullets and embeds each one.
func Build(sourceText string) *Index {
	bullets := SplitBullets(sourceText)
	idx := &Index{
		ModelID:            embeddings.ModelID,
		BulletSplitVersion: BulletSplitVersion,
		SourceHash:         hashText(sourceText),
	}
	idx.Bullets = make([]models.ResumeBullet, len(bullets))
	for i, b := range bullets {
		idx.Bullets[i] = models.ResumeBullet{
			Index:     i,
			Text:      b,
			Embedding: embeddings.Embed(b),
		}
	}
	return idx
}

// IsStale reports whether this index was built under a different cache
// key than the one the current résumé source and model would produce.
func (idx *Index) IsStale(sourceText string) bool {
	if idx == nil {
		return true
	}
	if idx.ModelID != embeddings.ModelID || idx.BulletSplitVersion != BulletSplitVersion {
		return true
	}
	return idx.SourceHash != hashText(sourceText)
}

// Neighbor is one search result: the bullet and its similarity to the query.
type Neighbor struct {
	Bullet     models.ResumeBullet
	Similarity float64
}

// Search returns the top-k bullets by inner product with queryEmbedding,
// sorted by descending similarity then ascending bullet index for a
// stable tie-break.
func (idx *Index) Search(queryEmbedding []float64, k int) []Neighbor {
	neighbors := make([]Neighbor, len(idx.Bullets))
	for i, b := range idx.Bullets {
		neighbors[i] = Neighbor{
			Bullet:     b,
			Similarity: embeddings.CosineSimilarity(queryEmbedding, b.Embedding),
		}
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Similarity != neighbors[j].Similarity {
			return neighbors[i].Similarity > neighbors[j].Similarity
		}
		return neighbors[i].Bullet.Index < neighbors[j].Bullet.Index
	})
	if k > 0 && k < len(neighbors) {
		neighbors = neighbors[:k]
	}
	return neighbors
}

// Best returns the single closest bullet, or a zero Neighbor with ok=false
// if the index has no bullets.
func (idx *Index) Best(queryEmbedding []float64) (Neighbor, bool) {
	top := idx.Search(queryEmbedding, 1)
	if len(top) == 0 {
		return Neighbor{}, false
	}
	return top[0], true
}

// Encode gob-serializes the index for on-disk caching. There is no
// ecosystem serialization library in the dependency pack well-suited to
// an internal-only, Go-to-Go artifact like this one, so encoding/gob is
// used directly.
func (idx *Index) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(idx); err != nil {
		return nil, fmt.Errorf("resumeindex: encoding: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode deserializes a gob-encoded index.
func Decode(data []byte) (*Index, error) {
	var idx Index
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&idx); err != nil {
		return nil, fmt.Errorf("resumeindex: decoding: %w", err)
	}
	return &idx, nil
}

// LoadOrBuild loads a cached index from cachePath if present and not
// stale for sourceText, otherwise rebuilds it and writes the new cache.
func LoadOrBuild(cachePath string, sourceText string) (*Index, error) {
	if data, err := os.ReadFile(cachePath); err == nil {
		if idx, decErr := Decode(data); decErr == nil && !idx.IsStale(sourceText) {
			return idx, nil
		}
	}

	idx := Build(sourceText)
	data, err := idx.Encode()
	if err != nil {
		return idx, err
	}
	if err := os.WriteFile(cachePath, data, 0o644); err != nil {
		return idx, fmt.Errorf("resumeindex: writing cache %q: %w", cachePath, err)
	}
	return idx, nil
}
