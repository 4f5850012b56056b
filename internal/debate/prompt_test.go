package debate

import (
	"strings"
	"testing"
)

func TestFocusedPrompt(t *testing.T) {
	request := "Review the order creation logic for bugs"
	context := "[Lines 1-10] create_order\ndef create_order(): ..."
	prompt := FocusedPrompt(request, context, []string{"bug", "database"})

	if !strings.Contains(prompt, request) {
		t.Error("prompt should contain the request")
	}
	if !strings.Contains(prompt, context) {
		t.Error("prompt should contain the extracted context")
	}
	if !strings.Contains(prompt, "FOCUS ON:") {
		t.Error("prompt should list focus areas")
	}
	if !strings.Contains(prompt, "- Bug") || !strings.Contains(prompt, "- Database") {
		t.Errorf("focus areas not titleized:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Score: 85/100") {
		t.Error("prompt should end with the score format instruction")
	}
}

func TestCounterPrompt(t *testing.T) {
	prompt := CounterPrompt("Review auth", "some context", []string{"security"})

	if !strings.Contains(prompt, "COUNTER-PERSPECTIVE") {
		t.Error("counter prompt should declare the counter role")
	}
	if !strings.Contains(prompt, "CRITICAL REVIEWER") {
		t.Error("counter prompt should instruct critical review")
	}
	if !strings.Contains(prompt, "Focus on security.") {
		t.Errorf("prompt missing focus sentence:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Score:") {
		t.Error("counter prompt should carry the score instruction")
	}
}

func TestPrompts_Differ(t *testing.T) {
	a := FocusedPrompt("req", "ctx", []string{"bug"})
	b := CounterPrompt("req", "ctx", []string{"bug"})
	if a == b {
		t.Error("primary and counter prompts must differ so cache lines stay independent")
	}
}

func TestTitleize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"refactoring", "Refactoring"},
		{"error_handling", "Error Handling"},
		{"ui", "Ui"},
		{"überprüfung", "Überprüfung"},
		{"安全", "安全"},
	}
	for _, tt := range tests {
		if got := titleize(tt.in); got != tt.want {
			t.Errorf("titleize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
