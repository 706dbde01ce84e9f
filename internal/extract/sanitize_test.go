package extract

import (
	"strings"
	"testing"
)

func TestExtractStripsReasoningRegion(t *testing.T) {
	raw := "<think>ignore</think>\n```python\ndef add(a, b):\n    return a + b\n```"
	code := Extract(raw)
	if code != "def add(a, b):\n    return a + b" {
		t.Errorf("Extract = %q", code)
	}
	if strings.Contains(code, "ignore") {
		t.Error("reasoning content leaked into extracted code")
	}
}

func TestExtractReasoningNeverLeaks(t *testing.T) {
	raw := "<think>secret deliberation with def f(): inside</think>\n```\nx = 1\n```"
	code := Extract(raw)
	if strings.Contains(code, "secret") || strings.Contains(code, "deliberation") {
		t.Errorf("reasoning leaked: %q", code)
	}
	if code != "x = 1" {
		t.Errorf("Extract = %q, want x = 1", code)
	}
}

func TestExtractUnclosedReasoningDropsToEnd(t *testing.T) {
	raw := "some text <think> secret\n```python\ndef f(): pass\n```"
	code := Extract(raw)
	if strings.Contains(code, "secret") {
		t.Errorf("unclosed reasoning leaked: %q", code)
	}
	if code != "" {
		t.Errorf("Extract = %q, want empty", code)
	}
}

func TestExtractPrefersLongestFence(t *testing.T) {
	// short illustrative fragment before the real answer
	raw := "```\nx\n```\nand now the full solution:\n```\nxx\n```"
	if code := Extract(raw); code != "xx" {
		t.Errorf("Extract = %q, want xx", code)
	}
	// and with the long block first
	raw = "```\nxx\n```\nshorter:\n```\nx\n```"
	if code := Extract(raw); code != "xx" {
		t.Errorf("Extract = %q, want xx", code)
	}
}

func TestExtractLongestTieFirstWins(t *testing.T) {
	raw := "```\nimport os\n```\n```\nimport re\n```"
	if code := Extract(raw); code != "import os" {
		t.Errorf("Extract = %q, want import os (first of equal-length blocks)", code)
	}
}

func TestExtractDropsPreambleLines(t *testing.T) {
	raw := "Reasoning: work out the loop bounds\ndef f():\n    pass"
	code := Extract(raw)
	if strings.Contains(code, "Reasoning") {
		t.Errorf("preamble survived: %q", code)
	}
	if code != "def f():\n    pass" {
		t.Errorf("Extract = %q", code)
	}
}

func TestExtractHeuristicCodeStart(t *testing.T) {
	raw := "Sure, here you go:\n\nimport os\nprint(os.getcwd())"
	code := Extract(raw)
	if code != "import os\nprint(os.getcwd())" {
		t.Errorf("Extract = %q", code)
	}
}

func TestExtractHeuristicCallExpression(t *testing.T) {
	raw := "Sure! Here's the answer: print(42"
	if code := Extract(raw); code != "print(42" {
		t.Errorf("Extract = %q, want print(42", code)
	}
}

func TestExtractTruncatesAtProseHeader(t *testing.T) {
	raw := "def f():\n    return 1\n\nExplanation: this returns one."
	code := Extract(raw)
	if code != "def f():\n    return 1" {
		t.Errorf("Extract = %q", code)
	}
}

func TestExtractTruncatesAtEndMarker(t *testing.T) {
	raw := "import os\n# end of solution\nmore prose about modules"
	code := Extract(raw)
	if code != "import os" {
		t.Errorf("Extract = %q", code)
	}
}

func TestExtractDecoratorAndGuardMarkers(t *testing.T) {
	raw := "The script:\n@app.route\ndef handler():\n    pass"
	code := Extract(raw)
	if !strings.HasPrefix(code, "@app.route") {
		t.Errorf("Extract = %q, want decorator start", code)
	}

	raw = "Run it like this:\nif __name__ == \"__main__\":\n    main()"
	code = Extract(raw)
	if !strings.HasPrefix(code, "if __name__") {
		t.Errorf("Extract = %q, want entry-point guard start", code)
	}
}

func TestExtractEmptyOnProse(t *testing.T) {
	raw := "This response is an apology without any code at all."
	if code := Extract(raw); code != "" {
		t.Errorf("Extract = %q, want empty result", code)
	}
}

func TestExtractEmptyOnWhitespace(t *testing.T) {
	if code := Extract("   \n\t\n"); code != "" {
		t.Errorf("Extract = %q, want empty result", code)
	}
}
