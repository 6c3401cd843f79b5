package parser

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"
)

// modelineLines is how many lines at each end of a file are searched for an
// editor modeline.
const modelineLines = 5

var (
	emacsModeRe = regexp.MustCompile(`-\*-\s*(?:mode:\s*)?([A-Za-z+]+)\s*(?:;.*)?-\*-`)
	vimModeRe   = regexp.MustCompile(`(?:vi|vim|ex):.*\b(?:ft|filetype)=([A-Za-z+]+)`)

	// cppMarkers are tokens that only appear in C++ headers.
	cppMarkers = [][]byte{
		[]byte("class "),
		[]byte("namespace "),
		[]byte("template<"),
		[]byte("template <"),
		[]byte("public:"),
		[]byte("private:"),
		[]byte("protected:"),
		[]byte("::"),
	}
)

// GuessLanguage determines the language of a source file.
// An editor modeline near the start or end of the file takes precedence over
// the extension. Headers without a modeline are classified by content.
// Returns a *GuessError when the language cannot be determined.
func GuessLanguage(source []byte, path string) (Language, error) {
	if lang := languageFromModeline(source); lang != "" {
		return lang, nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	lang := LanguageFromExtension(ext)
	if lang == "" {
		return "", &GuessError{Path: path}
	}

	if ext == ".h" && looksLikeCpp(source) {
		return Cpp, nil
	}
	return lang, nil
}

// languageFromModeline looks for an Emacs or Vim modeline in the first and
// last few lines of source.
func languageFromModeline(source []byte) Language {
	lines := bytes.Split(source, []byte("\n"))

	var candidates [][]byte
	if len(lines) <= 2*modelineLines {
		candidates = lines
	} else {
		candidates = append(candidates, lines[:modelineLines]...)
		candidates = append(candidates, lines[len(lines)-modelineLines:]...)
	}

	for _, line := range candidates {
		if m := emacsModeRe.FindSubmatch(line); m != nil {
			if lang := languageFromMode(string(m[1])); lang != "" {
				return lang
			}
		}
		if m := vimModeRe.FindSubmatch(line); m != nil {
			if lang := languageFromMode(string(m[1])); lang != "" {
				return lang
			}
		}
	}
	return ""
}

func languageFromMode(mode string) Language {
	switch strings.ToLower(mode) {
	case "c":
		return C
	case "c++", "cpp":
		return Cpp
	default:
		return ""
	}
}

func looksLikeCpp(source []byte) bool {
	for _, marker := range cppMarkers {
		if bytes.Contains(source, marker) {
			return true
		}
	}
	return false
}
