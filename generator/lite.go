package generator

import "fmt"

// Lite returns a short reply: the summary of a matching guide, or an acknowledgment
func (g *Generator) Lite(text string) string {
	if guide, ok := g.catalog.Match(text); ok {
		return fmt.Sprintf("**%s**: %s\n\nSwitch to Smart mode for steps, common mistakes, and examples.", guide.Title, guide.Summary)
	}
	return fmt.Sprintf("Got it: \"%s\". Lite mode keeps answers short; switch to Smart mode for a detailed answer.", subjectOf(text))
}
