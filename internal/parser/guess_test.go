package parser

import (
	"errors"
	"testing"
)

func TestGuessLanguage(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		source string
		want   Language
	}{
		{"c file", "main.c", "int main(void) { return 0; }\n", C},
		{"cpp file", "main.cpp", "int main() { return 0; }\n", Cpp},
		{"upper case extension", "MAIN.CPP", "int main() {}\n", Cpp},
		{"plain header", "util.h", "int util(int);\n", C},
		{"cpp header by content", "shape.h", "class Shape { public: int x; };\n", Cpp},
		{"emacs modeline", "legacy.h", "/* -*- C++ -*- */\nint f();\n", Cpp},
		{"emacs mode key", "legacy.c", "// -*- mode: c++; tab-width: 4 -*-\nint f();\n", Cpp},
		{"vim modeline wins over extension", "x.cpp", "int f();\n// vim: set ft=c :\n", C},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GuessLanguage([]byte(tt.source), tt.path)
			if err != nil {
				t.Fatalf("GuessLanguage failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("GuessLanguage(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestGuessLanguageUnknown(t *testing.T) {
	_, err := GuessLanguage([]byte("print('hi')\n"), "script.py")
	if err == nil {
		t.Fatal("expected error for unknown extension")
	}

	var guessErr *GuessError
	if !errors.As(err, &guessErr) {
		t.Fatalf("expected *GuessError, got %T", err)
	}
	if guessErr.Path != "script.py" {
		t.Errorf("expected path script.py, got %s", guessErr.Path)
	}
}
