package excerpt

import "strings"

// focusKeywords maps request keywords to a focus area.
var focusKeywords = []struct {
	area     string
	keywords []string
}{
	{"refactoring", []string{"refactor", "restructure", "rewrite", "cleanup", "clean up", "simplify"}},
	{"database", []string{"database", "schema", "migration", "sql", "query", "transaction", "index"}},
	{"ui", []string{"ui", "form", "view", "display", "render", "frontend", "layout"}},
	{"bug", []string{"bug", "race", "error", "crash", "fix", "leak", "deadlock", "incorrect"}},
	{"security", []string{"security", "auth", "vulnerab", "inject", "secret", "permission"}},
	{"performance", []string{"performance", "slow", "latency", "optimize", "memory", "throughput"}},
	{"testing", []string{"test", "coverage", "mock", "assertion"}},
}

// InferFocusAreas derives focus areas from a free-form request. Matching is
// keyword-based; an unmatched request defaults to refactoring.
func InferFocusAreas(request string) []string {
	lower := strings.ToLower(request)

	var areas []string
	for _, fk := range focusKeywords {
		for _, kw := range fk.keywords {
			if strings.Contains(lower, kw) {
				areas = append(areas, fk.area)
				break
			}
		}
	}
	if len(areas) == 0 {
		areas = []string{"refactoring"}
	}
	return areas
}
