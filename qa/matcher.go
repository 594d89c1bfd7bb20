package qa

import (
	"log"
	"strings"
	"sync"
)

const (
	StatusSelectClassAndSubject = "Select a class and subject to load the offline pack."
	StatusPackNotDownloaded     = "Offline pack not downloaded for this subject yet."
	StatusPackLoadFailed        = "Unable to load the offline pack."

	notFoundAnswer = "I'm sorry, I couldn't find an answer to that question. Please try rephrasing it."
)

// Result is the outcome of one offline lookup. Found=false carries the
// not-found answer text so callers can render it directly.
type Result struct {
	Found  bool   `json:"found"`
	Topic  string `json:"topic,omitempty"`
	Answer string `json:"answer"`
}

// Cache holds flattened concept lists per pack key for the process lifetime.
// Entries are only ever added; packs are immutable bundled assets, so a
// duplicate first load for the same key just overwrites with equal content.
type Cache struct {
	mu       sync.RWMutex
	concepts map[string][]ConceptNode
}

func NewCache() *Cache {
	return &Cache{concepts: make(map[string][]ConceptNode)}
}

func (c *Cache) Get(key string) ([]ConceptNode, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	concepts, ok := c.concepts[key]
	return concepts, ok
}

func (c *Cache) Set(key string, concepts []ConceptNode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.concepts[key] = concepts
}

// Matcher answers free-text questions for one (class, subject) pair from the
// flattened concepts of its offline pack. It carries no shared mutable state
// beyond the injected cache, so every open subject screen gets its own.
type Matcher struct {
	registry Registry
	cache    *Cache

	key      string
	concepts []ConceptNode
	loading  bool
	status   string
}

func NewMatcher(registry Registry, cache *Cache) *Matcher {
	if cache == nil {
		cache = NewCache()
	}
	return &Matcher{
		registry: registry,
		cache:    cache,
	}
}

// Use resolves the pack for a class/subject pair and loads it unless the
// cache already has it. A loader failure leaves the matcher unready with a
// status message; it is not retried until Use is called for the key again.
func (m *Matcher) Use(classID, subjectID string) {
	m.key = m.registry.ResolveKey(classID, subjectID)
	m.concepts = nil
	m.status = ""

	if m.key == "" {
		m.status = StatusSelectClassAndSubject
		return
	}

	loader, ok := m.registry[m.key]
	if !ok {
		m.status = StatusPackNotDownloaded
		return
	}

	if concepts, ok := m.cache.Get(m.key); ok {
		m.concepts = concepts
		return
	}

	m.loading = true
	defer func() { m.loading = false }()

	pack, err := loader()
	if err != nil {
		log.Printf("[QA] load pack error for %s: %v", m.key, err)
		m.status = StatusPackLoadFailed
		return
	}

	flattened := pack.Flatten()
	m.cache.Set(m.key, flattened)
	m.concepts = flattened
}

// IsReady reports whether a non-empty concept list is loaded for the active key.
func (m *Matcher) IsReady() bool {
	return len(m.concepts) > 0
}

func (m *Matcher) IsLoading() bool {
	return m.loading
}

// Status returns the user-facing status message, empty when nothing is wrong.
func (m *Matcher) Status() string {
	return m.status
}

// FindAnswer ranks the loaded concepts against a free-text question and
// returns the best match. It returns nil when nothing is loaded or the
// question normalizes to nothing: there is no query to answer, which is not
// the same as a failed search. It never returns an error.
func (m *Matcher) FindAnswer(question string) *Result {
	if len(m.concepts) == 0 {
		return nil
	}

	normalized := NormalizeText(question)
	if normalized == "" {
		return nil
	}

	tokens := make(map[string]struct{})
	for _, token := range strings.Fields(normalized) {
		tokens[token] = struct{}{}
	}

	bestScore := 0
	var best *ConceptNode

	for i := range m.concepts {
		concept := &m.concepts[i]
		score := scoreConcept(concept, normalized, tokens)
		if score > bestScore {
			bestScore = score
			best = concept
		}
	}

	if best == nil || bestScore <= 0 {
		return &Result{
			Found:  false,
			Answer: notFoundAnswer,
		}
	}

	return &Result{
		Found:  true,
		Topic:  best.Topic,
		Answer: buildAnswer(best),
	}
}

// scoreConcept applies the lexical scoring rules: 5 per keyword found inside
// the query, 3 per question variation containing or contained by the query,
// 3 for the topic under the same bidirectional rule, and 1 per query token
// that exactly equals a keyword. Ties keep the earlier concept because the
// caller only replaces on a strictly higher score.
func scoreConcept(concept *ConceptNode, query string, tokens map[string]struct{}) int {
	keywords := make([]string, 0, len(concept.Keywords))
	for _, kw := range concept.Keywords {
		if normalized := NormalizeText(kw); normalized != "" {
			keywords = append(keywords, normalized)
		}
	}

	score := 0

	for _, keyword := range keywords {
		if strings.Contains(query, keyword) {
			score += 5
		}
	}

	for _, variation := range concept.QuestionVariations {
		normalized := NormalizeText(variation)
		if normalized == "" {
			continue
		}
		if strings.Contains(normalized, query) || strings.Contains(query, normalized) {
			score += 3
		}
	}

	if topic := NormalizeText(concept.Topic); topic != "" {
		if strings.Contains(topic, query) || strings.Contains(query, topic) {
			score += 3
		}
	}

	keywordSet := make(map[string]struct{}, len(keywords))
	for _, keyword := range keywords {
		keywordSet[keyword] = struct{}{}
	}
	for token := range tokens {
		if _, ok := keywordSet[token]; ok {
			score++
		}
	}

	return score
}

// buildAnswer renders the explanation paragraph followed by a bullet list of
// key points, joined by a blank line. A concept with neither yields an empty
// body, which is valid but uninformative.
func buildAnswer(concept *ConceptNode) string {
	var sections []string

	if concept.Payload != nil {
		if explanation := strings.TrimSpace(concept.Payload.ExplanationText); explanation != "" {
			sections = append(sections, explanation)
		}

		var bullets []string
		for _, point := range concept.Payload.KeyPoints {
			if trimmed := strings.TrimSpace(point); trimmed != "" {
				bullets = append(bullets, "• "+trimmed)
			}
		}
		if len(bullets) > 0 {
			sections = append(sections, strings.Join(bullets, "\n"))
		}
	}

	return strings.TrimSpace(strings.Join(sections, "\n\n"))
}
