package compiler

import "strings"

// extractBoundaries returns the whitespace-delimited tokens immediately to
// the left and right of the first occurrence of fragment in sentence. An
// empty string means the fragment touches that edge of the sentence. A bare
// "?" on the right is escaped to `\?` so the engine's boundary matcher does
// not read it as a quantifier.
func extractBoundaries(sentence, fragment string) (left, right string) {
	start := strings.Index(sentence, fragment)
	if start < 0 {
		return "", ""
	}
	end := start + len(fragment)
	if start > 0 {
		if pre := strings.Fields(sentence[:start]); len(pre) > 0 {
			left = pre[len(pre)-1]
		}
	}
	if end < len(sentence) {
		if post := strings.Fields(sentence[end:]); len(post) > 0 {
			right = post[0]
			if right == "?" {
				right = `\?`
			}
		}
	}
	return left, right
}
