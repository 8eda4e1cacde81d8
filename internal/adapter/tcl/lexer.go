// Package tcl is the secondary surface parser: a Tcl/Tk dialect
// targeting the same IR as KRY, enabling round-trip translation between
// surface languages.
package tcl

import "strings"

// command is one parsed Tcl command: a flat word list.
type command struct {
	words []string
	line  int
}

// splitCommands breaks source into commands. Commands end at newline or
// `;`; words are whitespace-separated with `{...}` and `"..."` grouping
// (nesting honored inside braces) and `[...]` passed through verbatim.
// `#` at command start opens a comment to end of line.
func splitCommands(source string) []command {
	var cmds []command
	line := 1
	i := 0
	n := len(source)

	for i < n {
		// Skip leading whitespace and separators.
		for i < n && (source[i] == ' ' || source[i] == '\t' || source[i] == '\n' || source[i] == ';' || source[i] == '\r') {
			if source[i] == '\n' {
				line++
			}
			i++
		}
		if i >= n {
			break
		}
		if source[i] == '#' {
			for i < n && source[i] != '\n' {
				i++
			}
			continue
		}

		cmd := command{line: line}
		for i < n && source[i] != '\n' && source[i] != ';' {
			for i < n && (source[i] == ' ' || source[i] == '\t' || source[i] == '\r') {
				i++
			}
			if i >= n || source[i] == '\n' || source[i] == ';' {
				break
			}
			word, next, lines := readWord(source, i)
			cmd.words = append(cmd.words, word)
			line += lines
			i = next
		}
		if len(cmd.words) > 0 {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// readWord reads one word starting at i, returning the word, the index
// past it, and how many newlines it spanned (brace groups may be
// multi-line).
func readWord(source string, i int) (string, int, int) {
	n := len(source)
	lines := 0
	switch source[i] {
	case '{':
		depth := 0
		start := i + 1
		for i < n {
			switch source[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return source[start:i], i + 1, lines
				}
			case '\n':
				lines++
			}
			i++
		}
		return source[start:], i, lines
	case '"':
		i++
		var sb strings.Builder
		for i < n && source[i] != '"' {
			if source[i] == '\\' && i+1 < n {
				i++
			}
			if source[i] == '\n' {
				lines++
			}
			sb.WriteByte(source[i])
			i++
		}
		if i < n {
			i++ // closing quote
		}
		return sb.String(), i, lines
	case '[':
		depth := 0
		start := i
		for i < n {
			switch source[i] {
			case '[':
				depth++
			case ']':
				depth--
				if depth == 0 {
					return source[start : i+1], i + 1, lines
				}
			case '\n':
				lines++
			}
			i++
		}
		return source[start:], i, lines
	default:
		start := i
		for i < n && source[i] != ' ' && source[i] != '\t' && source[i] != '\n' && source[i] != ';' && source[i] != '\r' {
			i++
		}
		return source[start:i], i, lines
	}
}
