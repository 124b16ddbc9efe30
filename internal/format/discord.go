package format

// MaxMessageLength is Discord's message size limit in characters.
const MaxMessageLength = 2000

// CodeBlock wraps message in a Discord code block.
func CodeBlock(message string) string {
	return "```" + message + "```"
}

// Bold marks message bold.
func Bold(message string) string {
	return "**" + message + "**"
}

// Truncate shortens message to fit in one Discord message, ending it with
// "...". preserve reserves extra room, e.g. 6 for the code block fences.
func Truncate(message string, preserve int) string {
	runes := []rune(message)
	if len(runes) <= MaxMessageLength-preserve {
		return message
	}

	keep := MaxMessageLength - 3 - preserve
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + "..."
}
