// Package notation rewrites bracketed LaTeX equation delimiters into the dollar
// delimiters understood by the markdown renderer.
//
//	\( E=mc^2 \)   ->  $E=mc^2$
//	\[ x+y \]      ->  \n$$\nx+y\n$$\n
package notation

import (
	"regexp"
	"strings"
)

var (
	inlinePattern = regexp.MustCompile(`\\\((.+?)\\\)`)
	blockPattern  = regexp.MustCompile(`(?s)\\\[(.+?)\\\]`)
)

// Contains reports whether text holds an inline or a block bracketed equation.
func Contains(text string) bool {
	return inlinePattern.MatchString(text) || blockPattern.MatchString(text)
}

// Normalize rewrites every bracketed equation in text. Text without one is
// returned unchanged, and unbalanced delimiters never match.
//
// Every rewrite consumes one opening and one closing delimiter and emits none,
// so the loop terminates, and its result contains no further match. That makes
// Normalize idempotent even for nested input such as \(\(a\)\).
func Normalize(text string) string {
	for Contains(text) {
		text = rewrite(text)
	}
	return text
}

func rewrite(text string) string {
	text = blockPattern.ReplaceAllStringFunc(text, func(m string) string {
		inner := blockPattern.FindStringSubmatch(m)[1]
		return "\n$$\n" + strings.TrimSpace(inner) + "\n$$\n"
	})
	return inlinePattern.ReplaceAllStringFunc(text, func(m string) string {
		inner := inlinePattern.FindStringSubmatch(m)[1]
		return "$" + strings.TrimSpace(inner) + "$"
	})
}
