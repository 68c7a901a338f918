package generator

import (
	"regexp"
	"strings"
)

// Guide is a static topic entry used to answer free-text questions with a structured reply
type Guide struct {
	ID       string
	Title    string
	Triggers []string
	Summary  string

	Why      []string
	Steps    []string
	Mistakes []string

	ExampleLanguage string
	ExampleBody     string

	FollowUps []string
}

// Catalog is an immutable set of guides. It is safe for concurrent use.
type Catalog struct {
	guides []Guide
}

// NewCatalog copies guides into a new Catalog. Triggers are lowercased.
func NewCatalog(guides []Guide) *Catalog {
	c := &Catalog{guides: make([]Guide, len(guides))}
	for i, g := range guides {
		g.Triggers = lowerAll(g.Triggers)
		g.Why = append([]string(nil), g.Why...)
		g.Steps = append([]string(nil), g.Steps...)
		g.Mistakes = append([]string(nil), g.Mistakes...)
		g.FollowUps = append([]string(nil), g.FollowUps...)
		c.guides[i] = g
	}
	return c
}

// DefaultCatalog returns a Catalog of the built-in guides
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultGuides)
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}

// Guides returns a copy of the catalog entries in catalog order
func (c *Catalog) Guides() []Guide {
	return append([]Guide(nil), c.guides...)
}

// Lookup returns the guide with the given id
func (c *Catalog) Lookup(id string) (Guide, bool) {
	for _, g := range c.guides {
		if g.ID == id {
			return g, true
		}
	}
	return Guide{}, false
}

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// normalize lowercases text and collapses whitespace
func normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// score weights multi-word triggers (phrase match) above single-word triggers (word prefix match)
func (g Guide) score(norm string, tokens []string) int {
	score := 0
	for _, trigger := range g.Triggers {
		if strings.Contains(trigger, " ") {
			if strings.Contains(norm, trigger) {
				score += 3
			}
			continue
		}
		for _, tok := range tokens {
			if strings.HasPrefix(tok, trigger) {
				score++
				break
			}
		}
	}
	return score
}

// Match returns the best scoring guide for text. Ties go to the earlier guide.
func (c *Catalog) Match(text string) (Guide, bool) {
	norm := normalize(text)
	tokens := tokenPattern.FindAllString(norm, -1)

	best, bestScore := -1, 0
	for i, g := range c.guides {
		if s := g.score(norm, tokens); s > bestScore {
			best, bestScore = i, s
		}
	}
	if best < 0 {
		return Guide{}, false
	}
	return c.guides[best], true
}
