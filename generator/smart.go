package generator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/korylprince/chat-transport/api"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	topicIntros = []string{
		"Here's a practical way to approach **%s**.",
		"Good question. Let's break down **%s**.",
		"Here's how I'd think about **%s**.",
	}
	followUpIntros = []string{
		"Building on the previous answer about **%s**.",
		"Going deeper on **%s**.",
		"More on **%s**, picking up where we left off.",
	}
	genericIntros = []string{
		"Here's how I'd approach \"%s\".",
		"Let's work through \"%s\".",
		"Here's a structured take on \"%s\".",
	}
	genericNextSteps = []string{
		"Share the code, error, or screen you're working with and I'll tailor this.",
		"Tell me your constraints (stack, deadline, audience) and I'll narrow this down.",
		"Pick the step you're least sure about and ask me to expand it.",
	}

	placePattern = regexp.MustCompile(`\b(?:in|for|at)\s+([a-z][a-z .'-]{1,40}?)\s*(?:today|tomorrow|tonight|this week|right now|now)?[?!.]*$`)
)

// Smart returns a structured reply to text, using history to resolve follow-ups
func (g *Generator) Smart(text string, history []api.Message) string {
	c := g.Classify(text, history)
	p := newPicker(text)

	switch c.Branch {
	case KindGreeting:
		return g.greeting(p, history)
	case KindTime:
		return g.timeReply(p)
	case KindWeather:
		return weatherReply(p, text)
	case KindComparison:
		return g.comparison(p, c)
	case KindBio:
		return bioReply(p, text)
	case KindTopic:
		return topicReply(p, c, text)
	}
	return genericReply(p, c, text)
}

func (g *Generator) greeting(p picker, history []api.Message) string {
	var d document
	if _, returning := previousUserMessage(history); returning {
		d.para("%s Here's what I can help with:", p.pick("greeting", []string{"Hi again!", "Welcome back!", "Hello again!"}))
	} else {
		d.para("%s Here's what I can help with:", p.pick("greeting", []string{"Hi!", "Hello!", "Hey there!"}))
	}

	var titles []string
	for i, guide := range g.catalog.Guides() {
		if i == 4 {
			break
		}
		titles = append(titles, guide.Title)
	}

	capabilities := []string{
		"Side-by-side comparisons, for example \"react vs vue\"",
		"Debug checklists when something is broken",
		"Code examples when you ask for them",
	}
	if len(titles) > 0 {
		capabilities = append([]string{"Step-by-step guides on topics like " + strings.Join(titles, ", ")}, capabilities...)
	}
	d.bullets(capabilities)
	d.para("%s", p.pick("closing", []string{"What are you working on?", "What would you like to dig into?", "Where should we start?"}))
	return d.String()
}

func (g *Generator) timeReply(p picker) string {
	now := g.Now()
	zone, _ := now.Zone()

	var d document
	d.para("It's **%s** on %s.", now.Format("3:04 PM"), now.Format("Monday, January 2, 2006"))
	d.para("%s", p.pick("clock", []string{
		fmt.Sprintf("That's from this device's clock (%s).", zone),
		fmt.Sprintf("Times are in this device's local time zone (%s).", zone),
	}))
	return d.String()
}

func weatherReply(p picker, text string) string {
	var d document
	if m := placePattern.FindStringSubmatch(normalize(text)); m != nil {
		d.para("I can't check live weather for **%s** from here.", cases.Title(language.English).String(strings.TrimSpace(m[1])))
	} else {
		d.para("I can't check live weather from here.")
	}

	d.heading(3, "Where to look")
	d.bullets([]string{
		"Your phone's built-in weather app, or a national weather service for official alerts",
		"A radar map if you need to know about rain in the next hour",
		"An hourly forecast if you're planning something outdoors",
	})

	d.heading(3, "Next step")
	d.para("%s", p.pick("next", []string{
		"Tell me what you're planning and I'll suggest what to check for.",
		"If you're deciding on an outdoor plan, I can help you build a backup option.",
	}))
	return d.String()
}

// sideSummary describes one side of a comparison
func (g *Generator) sideSummary(side string) string {
	if guide, ok := g.catalog.Match(side); ok {
		return guide.Summary
	}
	return "A solid option when it fits your team's experience and the project's constraints."
}

func (g *Generator) comparison(p picker, c Classification) string {
	var d document
	d.heading(2, fmt.Sprintf("%s vs %s", c.Left, c.Right))
	d.para("%s", p.pick("intro", []string{
		"Both are reasonable choices. The right one depends on your constraints more than on the tools.",
		"There's no universal winner here, so let's compare them on what matters for you.",
	}))

	d.heading(3, "Quick take")
	d.bullets([]string{
		fmt.Sprintf("**%s**: %s", c.Left, g.sideSummary(c.Left)),
		fmt.Sprintf("**%s**: %s", c.Right, g.sideSummary(c.Right)),
	})

	d.heading(3, "How to decide")
	d.ordered([]string{
		"Start from your constraints: team experience, deadline, and what you already run in production.",
		fmt.Sprintf("Build the same small feature with %s and with %s, then compare the code you'd maintain.", c.Left, c.Right),
		"Check ecosystem fit: libraries, hosting, and hiring for each option.",
		"Decide, write down why, and revisit only if a constraint changes.",
	})

	d.heading(3, "Recommendation")
	d.para("%s", p.pick("recommendation", []string{
		fmt.Sprintf("Choose **%s** if your team already knows it or relies on its ecosystem. Choose **%s** if it fits your constraints better after a short prototype.", c.Left, c.Right),
		fmt.Sprintf("Default to **%s** when speed of delivery matters most and your team knows it. Pick **%s** when its strengths line up with the feature you're building first.", c.Left, c.Right),
	}))

	d.heading(3, "Next step")
	d.para("Tell me what you're building and I'll make a concrete call between %s and %s.", c.Left, c.Right)
	return d.String()
}

func bioReply(p picker, text string) string {
	var d document
	d.para("%s", p.pick("intro", []string{
		"Here's a structure for a strong professional bio.",
		"A good bio is short, specific, and written for its reader. Here's a structure that works.",
	}))

	d.heading(3, "Draft structure")
	d.ordered([]string{
		"Open with your role and the problem you solve, in one sentence.",
		"Add two or three concrete results, with numbers where you can.",
		"Name the tools or domains you're strongest in.",
		"Close with what you're looking for next or how to reach you.",
	})

	d.heading(3, "Tips")
	d.bullets([]string{
		"Write in the first person for LinkedIn and portfolios, third person for speaker bios",
		"Keep it under 120 words and cut adjectives before facts",
		"Tailor the first line to the audience reading it",
	})

	d.heading(3, "Next step")
	d.para("Share your current role, years of experience, and two achievements, and I'll draft it.")
	return d.String()
}

// debugChecklist returns generic debugging steps, seeded with a guide's first known pitfall
func debugChecklist(guide *Guide) []string {
	steps := []string{
		"Reproduce it reliably and write down the exact steps.",
		"Read the full error message and stack trace, not just the first line.",
	}
	if guide != nil {
		for _, mistake := range guide.Mistakes {
			if mistake = strings.TrimSpace(mistake); mistake != "" {
				steps = append(steps, fmt.Sprintf("Rule out the usual suspect for %s: %s", guide.Title, lowerFirst(mistake)))
				break
			}
		}
	}
	return append(steps,
		"Undo the most recent change and check whether the problem goes away.",
		"Add a test that fails before the fix and passes after.",
	)
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func topicReply(p picker, c Classification, text string) string {
	guide := c.Guide
	intros := topicIntros
	if c.FromHistory {
		intros = followUpIntros
	}

	var d document
	d.para(p.pick("intro", intros)+" %s", guide.Title, guide.Summary)

	switch c.Intent {
	case IntentWhy:
		d.heading(3, "Why it matters")
		d.bullets(guide.Why)
	case IntentDebug:
		d.heading(3, "Debug checklist")
		d.ordered(debugChecklist(&guide))
	default:
		d.heading(3, "Approach")
		d.ordered(guide.Steps)
	}

	if len(guide.Mistakes) > 0 {
		d.heading(3, "Common mistakes")
		d.bullets(guide.Mistakes)
	}

	if (c.Intent == IntentExample || wantsCode(normalize(text))) && guide.ExampleBody != "" {
		d.heading(3, "Example")
		d.code(guide.ExampleLanguage, guide.ExampleBody)
	}

	d.heading(3, "Next step")
	if len(guide.FollowUps) > 0 {
		d.para("%s", p.pick("next", guide.FollowUps))
	} else {
		d.para("%s", p.pick("next", genericNextSteps))
	}
	return d.String()
}

func genericReply(p picker, c Classification, text string) string {
	subject := subjectOf(text)

	var d document
	d.para(p.pick("intro", genericIntros), subject)

	switch c.Intent {
	case IntentWhy:
		d.heading(3, "Why it matters")
		d.bullets([]string{
			"It decides what you build first and what you can skip",
			"Getting it wrong usually shows up later as rework, not as an error",
			"A clear reason makes the tradeoffs easier to explain to others",
		})
	case IntentDebug:
		d.heading(3, "Debug checklist")
		d.ordered(debugChecklist(nil))
	default:
		d.heading(3, "Approach")
		d.ordered([]string{
			"Write down the goal in one sentence, including what done looks like.",
			"List the constraints: time, tools, and who it's for.",
			"Build the smallest version that proves the idea works.",
			"Check it against one concrete example, then iterate.",
		})
	}

	if c.Intent == IntentExample || wantsCode(normalize(text)) {
		d.heading(3, "Example")
		d.code("text", fmt.Sprintf("goal:   %s\ninput:  what you start with\noutput: what done looks like\ncheck:  one concrete case to verify", subject))
	}

	d.heading(3, "Next step")
	d.para("%s", p.pick("next", genericNextSteps))
	return d.String()
}
