package excerpt

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// headerOverhead is the fixed number of annotation lines allowed beyond the
// requested budget (one "[Lines N-M]" label per included section, bounded by
// the truncation marker).
const headerOverhead = 4

// Section is one structural unit of the source file.
type Section struct {
	Name      string
	Type      string // "function", "class", "type", or "module"
	StartLine int
	EndLine   int
	Content   string
}

// sectionHeader matches top-level named block openers across the languages
// the tool commonly reviews (Go, Python, JS/TS, Java-style, Rust).
var sectionHeader = regexp.MustCompile(
	`^(?:export\s+)?(?:public\s+|private\s+|protected\s+)?` +
		`(func|def|class|type|interface|struct|fn|function)\s+([A-Za-z_][A-Za-z0-9_]*)`)

// blockTypeFor maps a header keyword to a section type.
func blockTypeFor(keyword string) string {
	switch keyword {
	case "class", "interface", "struct":
		return "class"
	case "type":
		return "type"
	default:
		return "function"
	}
}

// Sections splits file content into top-level named sections plus a residual
// "module" section for leading/interstitial code outside any named block.
func Sections(content string) []Section {
	lines := strings.Split(content, "\n")

	var sections []Section
	var current *Section
	var residual []string
	residualStart := 1

	flushResidual := func(endLine int) {
		text := strings.TrimRight(strings.Join(residual, "\n"), "\n")
		if strings.TrimSpace(text) != "" {
			sections = append(sections, Section{
				Name:      "module",
				Type:      "module",
				StartLine: residualStart,
				EndLine:   endLine,
				Content:   text,
			})
		}
		residual = nil
	}

	for i, line := range lines {
		lineNo := i + 1
		if m := sectionHeader.FindStringSubmatch(line); m != nil && !isIndented(line) {
			if current != nil {
				current.EndLine = lineNo - 1
				sections = append(sections, *current)
			} else {
				flushResidual(lineNo - 1)
			}
			current = &Section{
				Name:      m[2],
				Type:      blockTypeFor(m[1]),
				StartLine: lineNo,
				Content:   line,
			}
			continue
		}

		if current != nil {
			// A new unindented non-blank line that is not a continuation of
			// the block ends the current section.
			if !isIndented(line) && strings.TrimSpace(line) != "" && !isBlockContinuation(line) {
				current.EndLine = lineNo - 1
				sections = append(sections, *current)
				current = nil
				residual = nil
				residualStart = lineNo
				residual = append(residual, line)
				continue
			}
			current.Content += "\n" + line
			continue
		}

		if len(residual) == 0 {
			residualStart = lineNo
		}
		residual = append(residual, line)
	}

	if current != nil {
		current.EndLine = len(lines)
		sections = append(sections, *current)
	} else {
		flushResidual(len(lines))
	}

	return sections
}

// isBlockContinuation reports whether an unindented line still belongs to the
// open block (closing braces, decorators, chained block syntax).
func isBlockContinuation(line string) bool {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "}"),
		strings.HasPrefix(trimmed, ")"),
		strings.HasPrefix(trimmed, "]"),
		strings.HasPrefix(trimmed, "@"):
		return true
	}
	return false
}

func isIndented(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}

// scoreSection counts focus-term occurrences, weighting name matches above
// body matches.
func scoreSection(sec Section, focus []string) int {
	const nameWeight = 10

	name := strings.ToLower(sec.Name)
	body := strings.ToLower(sec.Content)

	score := 0
	for _, term := range focus {
		term = strings.ToLower(term)
		if term == "" {
			continue
		}
		if strings.Contains(name, term) {
			score += nameWeight
		}
		score += strings.Count(body, term)
	}
	return score
}

// lineCount returns the number of lines in a section body.
func lineCount(sec Section) int {
	return strings.Count(sec.Content, "\n") + 1
}

// Extract reads a file and returns a focus-weighted excerpt of at most
// maxLines content lines (plus fixed annotation overhead). A missing or
// unreadable file returns an error; an empty file returns a near-empty
// excerpt.
func Extract(path string, focus []string, maxLines int) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("extracting context from %s: %w", path, err)
	}
	return ExtractFromContent(string(data), focus, maxLines), nil
}

// ExtractFromContent is Extract over in-memory content.
func ExtractFromContent(content string, focus []string, maxLines int) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	if maxLines <= 0 {
		maxLines = 200
	}

	sections := Sections(content)
	if len(sections) == 0 {
		return ""
	}

	type ranked struct {
		sec   Section
		score int
		pos   int
	}
	rankedSections := make([]ranked, len(sections))
	for i, sec := range sections {
		var score int
		if len(focus) > 0 {
			score = scoreSection(sec, focus)
		} else {
			// No focus terms: favor substantial sections, leading first.
			score = lineCount(sec)
		}
		rankedSections[i] = ranked{sec: sec, score: score, pos: i}
	}
	sort.SliceStable(rankedSections, func(i, j int) bool {
		return rankedSections[i].score > rankedSections[j].score
	})

	// Greedy fill. Each included section costs its body lines plus two
	// annotation lines (range label and separator); the total output never
	// exceeds maxLines plus the fixed headerOverhead.
	var sb strings.Builder
	budget := maxLines + headerOverhead
	used := 0
	for i, r := range rankedSections {
		cost := lineCount(r.sec) + 2
		if used+cost > budget {
			// The top-ranked section is truncated to fit rather than
			// dropped; lower-ranked sections are skipped.
			if i != 0 {
				continue
			}
			remaining := budget - used - 3 // label, truncation marker, separator
			if remaining <= 0 {
				break
			}
			lines := strings.Split(r.sec.Content, "\n")[:remaining]
			writeSection(&sb, r.sec, strings.Join(lines, "\n"))
			sb.WriteString("... (truncated)\n")
			used = budget
			continue
		}
		writeSection(&sb, r.sec, r.sec.Content)
		used += cost
	}

	return strings.TrimRight(sb.String(), "\n")
}

func writeSection(sb *strings.Builder, sec Section, body string) {
	fmt.Fprintf(sb, "[Lines %d-%d] %s\n", sec.StartLine, sec.EndLine, sec.Name)
	sb.WriteString(body)
	sb.WriteString("\n\n")
}
