package debate

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const scoreInstruction = "**IMPORTANT: End your response with a numerical score (0-100) like 'Score: 85/100'**"

// FocusedPrompt builds the primary side's prompt: the request, the extracted
// context, and the focus areas, kept small enough that the provider reads the
// excerpt instead of the whole file.
func FocusedPrompt(request, context string, focusAreas []string) string {
	var sb strings.Builder
	sb.WriteString("You are a senior software engineer reviewing this plan.\n\n")
	fmt.Fprintf(&sb, "USER REQUEST:\n%s\n\n", request)
	fmt.Fprintf(&sb, "RELEVANT CONTEXT:\n%s\n\n", context)
	sb.WriteString("FOCUS ON:\n")
	for _, area := range focusAreas {
		fmt.Fprintf(&sb, "- %s\n", titleize(area))
	}
	sb.WriteString("\nProvide your independent analysis: strengths, risks, and concrete improvements.\n")
	sb.WriteString("End with a recommendation.\n\n")
	sb.WriteString(scoreInstruction)
	return sb.String()
}

// CounterPrompt builds the counter side's prompt. The counter reviewer is
// explicitly instructed to be skeptical so the two perspectives stay
// independent even when both sides run on the same tool.
func CounterPrompt(request, context string, focusAreas []string) string {
	var sb strings.Builder
	sb.WriteString("You are a senior software architect providing a COUNTER-PERSPECTIVE on this plan.\n\n")
	fmt.Fprintf(&sb, "USER REQUEST:\n%s\n\n", request)
	fmt.Fprintf(&sb, "RELEVANT CONTEXT:\n%s\n\n", context)
	sb.WriteString("FOCUS AREAS:\n")
	for _, area := range focusAreas {
		fmt.Fprintf(&sb, "- %s\n", titleize(area))
	}
	sb.WriteString("\nYour task as a CRITICAL REVIEWER:\n")
	sb.WriteString("1. Provide YOUR independent analysis (be skeptical and critical)\n")
	sb.WriteString("2. Identify risks and concerns that others might miss\n")
	sb.WriteString("3. Suggest alternative approaches if the current plan has flaws\n")
	sb.WriteString("4. End with recommendation and numerical score (0-100)\n\n")
	fmt.Fprintf(&sb, "Be specific, actionable, and CRITICAL. Focus on %s.\n\n", strings.Join(focusAreas, ", "))
	sb.WriteString(scoreInstruction)
	return sb.String()
}

// titleize renders a focus key for display: "error_handling" -> "Error Handling".
func titleize(area string) string {
	words := strings.Fields(strings.ReplaceAll(area, "_", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
