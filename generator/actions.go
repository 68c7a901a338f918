package generator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Action is a follow-up request built from the previous assistant answer
type Action string

// Actions
const (
	ActionDeeper  Action = "deeper"
	ActionCode    Action = "code"
	ActionTLDR    Action = "tldr"
	ActionCompare Action = "compare"
)

const (
	actionContextLines = 6
	actionContextChars = 360
)

// ParseAction returns the Action named s
func ParseAction(s string) (Action, bool) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionDeeper, ActionCode, ActionTLDR, ActionCompare:
		return a, true
	}
	return "", false
}

// condense joins the first non-empty lines of content into one short line
func condense(content string) string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
		if len(lines) == actionContextLines {
			break
		}
	}
	joined := strings.Join(lines, " ")
	if len(joined) <= actionContextChars {
		return joined
	}
	// cut on a rune boundary
	cut := actionContextChars
	for cut > 0 && !utf8.RuneStart(joined[cut]) {
		cut--
	}
	return joined[:cut]
}

// ActionPrompt builds the user message for a follow-up action on assistantContent
func ActionPrompt(action Action, assistantContent string) string {
	var contextBlock string
	if condensed := condense(assistantContent); condensed != "" {
		contextBlock = "\n\nContext:\n" + condensed
	}

	var prompt string
	switch action {
	case ActionDeeper:
		prompt = "Go deeper on the previous answer: more technical detail, tradeoffs, and edge cases."
	case ActionCode:
		prompt = "Turn the previous answer into implementation steps and show an example code snippet."
	case ActionTLDR:
		prompt = "Give a TL;DR of the previous answer: 3 bullet points and one action step."
	default:
		prompt = "Compare 2-3 options for the previous answer, with pros, cons, and when to use each."
	}
	return fmt.Sprintf("%s%s", prompt, contextBlock)
}
