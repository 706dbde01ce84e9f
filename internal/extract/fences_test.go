package extract

import (
	"testing"
)

func TestScanFencesNone(t *testing.T) {
	blocks := ScanFences("no fences here at all")
	if len(blocks) != 0 {
		t.Errorf("expected 0 blocks, got %d", len(blocks))
	}
}

func TestScanFencesSingle(t *testing.T) {
	blocks := ScanFences("before\n```python\ndef f():\n    pass\n```\nafter")
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0] != "def f():\n    pass\n" {
		t.Errorf("block = %q", blocks[0])
	}
}

func TestScanFencesLanguageTagIgnored(t *testing.T) {
	tagged := ScanFences("```python\nx = 1\n```")
	bare := ScanFences("```\nx = 1\n```")
	if len(tagged) != 1 || len(bare) != 1 {
		t.Fatalf("expected 1 block each, got %d and %d", len(tagged), len(bare))
	}
	if tagged[0] != bare[0] {
		t.Errorf("tagged block %q != bare block %q", tagged[0], bare[0])
	}
}

func TestScanFencesOrdered(t *testing.T) {
	blocks := ScanFences("```\nfirst\n```\ntext\n```\nsecond\n```")
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0] != "first\n" {
		t.Errorf("blocks[0] = %q, want first", blocks[0])
	}
	if blocks[1] != "second\n" {
		t.Errorf("blocks[1] = %q, want second", blocks[1])
	}
}

func TestScanFencesUnterminated(t *testing.T) {
	blocks := ScanFences("```python\ndef f():\n    pass")
	if len(blocks) != 0 {
		t.Errorf("unterminated fence should yield no blocks, got %d", len(blocks))
	}
}

func TestScanFencesNotNested(t *testing.T) {
	// the first closing delimiter terminates the block
	blocks := ScanFences("```\nouter\n```\ninner\n```\ntail\n```")
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0] != "outer\n" {
		t.Errorf("blocks[0] = %q", blocks[0])
	}
}

func TestScanFencesInline(t *testing.T) {
	blocks := ScanFences("use ```x = 1``` to assign")
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0] != "x = 1" {
		t.Errorf("block = %q, want x = 1", blocks[0])
	}
}
