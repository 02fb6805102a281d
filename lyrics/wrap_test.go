package lyrics

import (
	"testing"
)

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"hello", 5},
		{"你好", 4},
		{"hi 你好", 7},
	}
	for _, tt := range tests {
		if got := DisplayWidth(tt.in); got != tt.want {
			t.Errorf("DisplayWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestWrapWords(t *testing.T) {
	lines := Wrap("is this the real life is this just fantasy", 20)
	if len(lines) < 2 {
		t.Fatalf("expected multiple lines, got %v", lines)
	}
	for _, line := range lines {
		if DisplayWidth(line) > 20 {
			t.Errorf("line %q wider than 20 cells", line)
		}
	}
	// No word should be split when it fits.
	if lines[0] != "is this the real" {
		t.Errorf("first line = %q", lines[0])
	}
}

func TestWrapShortLine(t *testing.T) {
	lines := Wrap("short", 40)
	if len(lines) != 1 || lines[0] != "short" {
		t.Errorf("Wrap(short) = %v", lines)
	}
	if lines := Wrap("", 40); lines != nil {
		t.Errorf("Wrap of empty text = %v, want nil", lines)
	}
}

func TestWrapCJK(t *testing.T) {
	// 13 wide runes = 26 cells; at width 10 that is 5 runes per line.
	lines := Wrap("我只在乎你心中你最重要问我", 10)
	if len(lines) < 2 {
		t.Fatalf("expected CJK text to wrap per rune, got %v", lines)
	}
	for _, line := range lines {
		if DisplayWidth(line) > 10 {
			t.Errorf("line %q wider than 10 cells", line)
		}
	}
}

func TestWrapLongWord(t *testing.T) {
	lines := Wrap("supercalifragilisticexpialidocious", 10)
	if len(lines) < 3 {
		t.Fatalf("expected the long word broken up, got %v", lines)
	}
	for _, line := range lines {
		if DisplayWidth(line) > 10 {
			t.Errorf("line %q wider than 10 cells", line)
		}
	}
}
