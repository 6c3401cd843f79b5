package parser

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
)

const testCSource = `#include <stdio.h>

struct point {
	int x;
	int y;
};

static int add(int a, int b) {
	return a + b;
}

int main(void) {
	printf("%d\n", add(1, 2));
	return 0;
}
`

const testCppSource = `namespace geo {
class Shape {
public:
	virtual double area() const = 0;
};
}

auto twice = [](int v) { return v * 2; };
`

func TestNewParser(t *testing.T) {
	t.Run("creates C parser", func(t *testing.T) {
		p, err := NewParser(C)
		if err != nil {
			t.Fatalf("NewParser(C) failed: %v", err)
		}
		defer p.Close()

		if p.lang != C {
			t.Errorf("expected language %s, got %s", C, p.lang)
		}
	})

	t.Run("creates C++ parser", func(t *testing.T) {
		p, err := NewParser(Cpp)
		if err != nil {
			t.Fatalf("NewParser(Cpp) failed: %v", err)
		}
		defer p.Close()

		if p.lang != Cpp {
			t.Errorf("expected language %s, got %s", Cpp, p.lang)
		}
	})

	t.Run("rejects unsupported language", func(t *testing.T) {
		_, err := NewParser(Language("fortran"))
		if err == nil {
			t.Fatal("expected error for unsupported language")
		}

		if _, ok := err.(*UnsupportedLanguageError); !ok {
			t.Errorf("expected UnsupportedLanguageError, got %T", err)
		}
	})
}

func TestParse(t *testing.T) {
	p, err := NewParser(C)
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	defer p.Close()

	result, err := p.ParseCtx(context.Background(), []byte(testCSource))
	if err != nil {
		t.Fatalf("ParseCtx failed: %v", err)
	}
	defer result.Close()

	if result.Root == nil {
		t.Fatal("expected root node")
	}
	if result.Root.Type() != "translation_unit" {
		t.Errorf("expected translation_unit root, got %s", result.Root.Type())
	}
	if result.HasErrors() {
		t.Error("expected no syntax errors")
	}
	if result.Language != C {
		t.Errorf("expected language c, got %s", result.Language)
	}
}

func TestSpaceKind(t *testing.T) {
	tests := []struct {
		name   string
		lang   Language
		source string
		want   map[string]int
	}{
		{
			name:   "C functions and structs",
			lang:   C,
			source: testCSource,
			want:   map[string]int{"function": 2, "struct": 1},
		},
		{
			name:   "C struct reference is not a space",
			lang:   C,
			source: "struct node { struct node *next; };\n",
			want:   map[string]int{"struct": 1},
		},
		{
			name:   "C++ namespace class and lambda",
			lang:   Cpp,
			source: testCppSource,
			want:   map[string]int{"namespace": 1, "class": 1, "closure": 1, "function": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewParser(tt.lang)
			if err != nil {
				t.Fatalf("NewParser failed: %v", err)
			}
			defer p.Close()

			result, err := p.ParseCtx(context.Background(), []byte(tt.source))
			if err != nil {
				t.Fatalf("ParseCtx failed: %v", err)
			}
			defer result.Close()

			got := make(map[string]int)
			walk(result.Root, func(n *sitter.Node) {
				if kind := SpaceKind(tt.lang, n); kind != "" {
					got[kind]++
				}
			})

			for kind, count := range tt.want {
				if got[kind] != count {
					t.Errorf("expected %d %s spaces, got %d (all: %v)", count, kind, got[kind], got)
				}
			}
			if len(got) != len(tt.want) {
				t.Errorf("unexpected space kinds: %v", got)
			}
		})
	}
}

func walk(n *sitter.Node, fn func(*sitter.Node)) {
	fn(n)
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), fn)
	}
}

func TestLanguageFromExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want Language
	}{
		{".c", C},
		{".h", C},
		{".C", C},
		{".cpp", Cpp},
		{".CPP", Cpp},
		{".cc", Cpp},
		{".hpp", Cpp},
		{".go", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			if got := LanguageFromExtension(tt.ext); got != tt.want {
				t.Errorf("LanguageFromExtension(%q) = %q, want %q", tt.ext, got, tt.want)
			}
		})
	}
}

func TestHasSourceExtension(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.c", true},
		{"dir/a.H", true},
		{"a.CPP", true},
		{"a.cc", true},
		{"a.hpp", true},
		{"a.cxx", false},
		{"Makefile", false},
		{"a.c.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := HasSourceExtension(tt.path); got != tt.want {
				t.Errorf("HasSourceExtension(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
