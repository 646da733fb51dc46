package slug

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Setup", "setup"},
		{"  Getting   Started  ", "getting-started"},
		{"3.1 内存管理", "3.1-内存管理"},
		{"3.1.节", "3.1.节"},
		{"What's new?", "whats-new"},
		{"C++ & Go", "c-go"},
		{"--leading and trailing--", "leading-and-trailing"},
		{"a - b", "a-b"},
		{"snake_case_name", "snake_case_name"},
		{"Tab\tSeparated", "tab-separated"},
		{"3.1\u3000内存管理", "3.1-内存管理"},
		{"a\u00a0b", "a-b"},
		{"\ufeffIntro", "intro"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		got := Normalize(tt.input)
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestAssignDuplicates(t *testing.T) {
	a := NewAssigner()
	want := []string{"setup", "setup-1", "setup-2"}
	for i, w := range want {
		if got := a.Assign("Setup"); got != w {
			t.Errorf("occurrence %d: got %q, want %q", i, got, w)
		}
	}
}

func TestAssignUniqueAgainstLiteralSuffix(t *testing.T) {
	a := NewAssigner()
	inputs := []string{"A", "A", "A-1", "A", "A 1"}
	seen := make(map[string]bool)
	for _, in := range inputs {
		s := a.Assign(in)
		if seen[s] {
			t.Fatalf("duplicate slug %q for input %q", s, in)
		}
		seen[s] = true
	}
	if a.Len() != len(inputs) {
		t.Errorf("Len() = %d, want %d", a.Len(), len(inputs))
	}
}

func TestAssignEmptyFallback(t *testing.T) {
	a := NewAssigner()
	first := a.Assign("???")
	second := a.Assign("")
	if first != "section" {
		t.Errorf("first fallback = %q, want %q", first, "section")
	}
	if second != "section-1" {
		t.Errorf("second fallback = %q, want %q", second, "section-1")
	}
}

func TestAssignersAreIndependent(t *testing.T) {
	a, b := NewAssigner(), NewAssigner()
	if a.Assign("Intro") != b.Assign("Intro") {
		t.Error("separate passes should produce the same base slug")
	}
}
