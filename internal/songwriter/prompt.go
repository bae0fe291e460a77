// Package songwriter turns project READMEs into song lyrics through a
// pluggable text-generation backend.
package songwriter

import "fmt"

// DefaultStyle is used when the caller does not name one.
const DefaultStyle = "Epic Power Metal"

// MaxDocChars caps how much of the README is embedded in the prompt.
// Rune count is a crude stand-in for the generator's token budget.
const MaxDocChars = 8000

const promptTemplate = `You are The Bard, an AI songwriter.
Here is the README for a software project named '%s':

---
%s
---
(Truncated if too long)

TASK:
Write a song about this project.
The style must be: "%s".
Format the output EXACTLY for Suno AI generation:

**Title:** <Title>
**Style:** <Style Description>
**Lyrics:**
[Verse]
...
[Chorus]
...

Be creative, use specific technical terms from the README, and capture the 'vibe' of the project.`

// BuildPrompt renders the instruction prompt for one song from the README
// text (truncated to MaxDocChars), the requested style, and the project's
// display name.
func BuildPrompt(doc, style, name string) string {
	return fmt.Sprintf(promptTemplate, name, Truncate(doc, MaxDocChars), style)
}

// Truncate returns the first n runes of s. Strings within the limit pass
// through unmodified.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
