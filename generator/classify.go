package generator

import (
	"regexp"
	"strings"

	"github.com/korylprince/chat-transport/api"
)

// Kind is the template branch chosen for a smart reply
type Kind int

// Kinds
const (
	KindGeneric Kind = iota
	KindGreeting
	KindTime
	KindWeather
	KindComparison
	KindBio
	KindTopic
)

func (k Kind) String() string {
	switch k {
	case KindGreeting:
		return "greeting"
	case KindTime:
		return "time"
	case KindWeather:
		return "weather"
	case KindComparison:
		return "comparison"
	case KindBio:
		return "bio"
	case KindTopic:
		return "topic"
	}
	return "generic"
}

// Intent is what the user wants out of an answer
type Intent string

// Intents
const (
	IntentHow     Intent = "how"
	IntentWhy     Intent = "why"
	IntentDebug   Intent = "debug"
	IntentExample Intent = "example"
	IntentGeneral Intent = "general"
)

// Classification is the result of classifying one user message
type Classification struct {
	Branch Kind
	Intent Intent
	Guide  Guide
	// FromHistory is set when Guide was resolved from the previous user message
	FromHistory bool
	Left        string
	Right       string
}

var (
	greetingPattern   = regexp.MustCompile(`^(hi|hello|hey|hiya|howdy|yo|greetings|good (morning|afternoon|evening))( there)?[\s!.,]*$`)
	timePattern       = regexp.MustCompile(`\b(what time|current time|time is it|time now|today's date|todays date|what day is|what's the date|what is the date)\b`)
	weatherPattern    = regexp.MustCompile(`\b(weather|forecast|temperature outside|is it raining|will it rain)\b`)
	comparisonPattern = regexp.MustCompile(`^(.+?)\s+(?:vs\.?|versus)\s+(.+)$`)
	bioPattern        = regexp.MustCompile(`\b(bio|biography|about me|resume|cv|career|cover letter|linkedin|job interview|portfolio)\b`)
	clauseEnd         = regexp.MustCompile(`[?!.,;]|\s(for|in|when|to|on)\s`)

	debugPattern   = regexp.MustCompile(`\b(error|errors|bug|bugs|crash|crashes|broken|fix|fails?|failing|exception|panic|not working|doesn't work|issue)\b`)
	examplePattern = regexp.MustCompile(`\b(example|examples|sample|snippet|code|show me)\b`)
	whyPattern     = regexp.MustCompile(`(^why\b|\bwhy (does|do|is|should|would)\b|\breason\b|\bpurpose\b|\bbenefits?\b|\bworth it\b)`)
	howPattern     = regexp.MustCompile(`\b(how|steps|implement|set up|setup|build|create|configure|approach|plan)\b`)

	continuationPattern = regexp.MustCompile(`\b(more|deeper|deep dive|example|examples|elaborate|expand|continue|again|details?|code|snippet|tl;?dr|go on|compare|that)\b`)

	comparisonLeadIns = []string{
		"what's the difference between", "what is the difference between", "difference between",
		"which is better", "should i use", "should i pick", "should i choose", "compare",
	}
)

const shortMessageWords = 4

// DetectIntent classifies what kind of answer text asks for
func DetectIntent(text string) Intent {
	norm := normalize(text)
	switch {
	case debugPattern.MatchString(norm):
		return IntentDebug
	case examplePattern.MatchString(norm):
		return IntentExample
	case whyPattern.MatchString(norm):
		return IntentWhy
	case howPattern.MatchString(norm):
		return IntentHow
	}
	return IntentGeneral
}

func wantsCode(norm string) bool {
	return examplePattern.MatchString(norm)
}

func isContinuation(norm string) bool {
	return len(strings.Fields(norm)) <= shortMessageWords || continuationPattern.MatchString(norm)
}

// splitComparison extracts the two sides of an "X vs Y" message
func splitComparison(norm string) (string, string, bool) {
	m := comparisonPattern.FindStringSubmatch(norm)
	if m == nil {
		return "", "", false
	}

	left := m[1]
	for _, lead := range comparisonLeadIns {
		if i := strings.LastIndex(left, lead); i >= 0 {
			left = left[i+len(lead):]
		}
	}
	left = lastWords(strings.Trim(left, " ?!.,:;"), 3)

	right := m[2]
	if loc := clauseEnd.FindStringIndex(right); loc != nil {
		right = right[:loc[0]]
	}
	right = firstWords(strings.Trim(right, " ?!.,:;"), 3)

	if left == "" || right == "" {
		return "", "", false
	}
	return left, right, true
}

func lastWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[len(words)-n:]
	}
	return strings.Join(words, " ")
}

func firstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

// previousUserMessage returns the newest user message in history
func previousUserMessage(history []api.Message) (string, bool) {
	i, content := api.LastUserMessage(history)
	return content, i >= 0
}

// Classify picks the template branch for text, given the history before it
func (g *Generator) Classify(text string, history []api.Message) Classification {
	norm := normalize(text)
	c := Classification{Intent: DetectIntent(norm)}

	switch {
	case greetingPattern.MatchString(norm):
		c.Branch = KindGreeting
		return c
	case timePattern.MatchString(norm):
		c.Branch = KindTime
		return c
	case weatherPattern.MatchString(norm):
		c.Branch = KindWeather
		return c
	}

	if left, right, ok := splitComparison(norm); ok {
		c.Branch, c.Left, c.Right = KindComparison, left, right
		return c
	}

	if bioPattern.MatchString(norm) {
		c.Branch = KindBio
		return c
	}

	if guide, ok := g.catalog.Match(norm); ok {
		c.Branch, c.Guide = KindTopic, guide
		return c
	}

	if isContinuation(norm) {
		if prev, ok := previousUserMessage(history); ok {
			if guide, ok := g.catalog.Match(prev); ok {
				c.Branch, c.Guide, c.FromHistory = KindTopic, guide, true
				return c
			}
		}
	}

	c.Branch = KindGeneric
	return c
}
