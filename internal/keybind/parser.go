package keybind

import (
	"regexp"
	"strings"
)

var (
	aliasLineRe = regexp.MustCompile(`^alias\s+([A-Za-z_][A-Za-z0-9_]*)\s+"([^"]*)"\s*$`)
	// KeyToken charset per the format grammar; lazy so the first quoted
	// section becomes the command body.
	standardBindRe  = regexp.MustCompile(`^([A-Za-z0-9_+\-\[\]][A-Za-z0-9_+\-\s\[\]]*?)\s*"([^"]*)"(?:\s+"([^"]*)")?\s*$`)
	bindDirectiveRe = regexp.MustCompile(`^/bind\s+(\S+)\s+(.+?)\s*$`)
)

// ParseFile parses keybind file text into bindings, aliases, comments and
// line errors. Each non-blank line is tried against the line grammars in
// order (comment, alias, standard bind, /bind directive); a line matching
// none of them is recorded as an error and parsing continues. A file with
// one bad line and five hundred good ones yields five hundred bindings
// and one error.
func ParseFile(text string) *ParseResult {
	result := &ParseResult{
		Bindings: make(map[string]Binding),
		Aliases:  make(map[string]Alias),
	}

	// Plain newline split, no line-length cap: a single oversized chain
	// must not truncate the rest of the file.
	for i, line := range strings.Split(normalizeNewlines(text), "\n") {
		parseLine(result, i+1, line)
	}

	return result
}

func normalizeNewlines(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

func parseLine(result *ParseResult, lineNumber int, raw string) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}

	if strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
		result.Comments = append(result.Comments, Comment{
			Line: lineNumber,
			Text: strings.TrimSpace(line[1:]),
		})
		return
	}

	if m := aliasLineRe.FindStringSubmatch(line); m != nil {
		result.Aliases[m[1]] = Alias{
			Name:     m[1],
			Commands: m[2],
			Line:     lineNumber,
		}
		return
	}

	if m := standardBindRe.FindStringSubmatch(line); m != nil {
		key := strings.TrimSpace(m[1])
		result.Bindings[key] = newBinding(key, m[2], lineNumber)
		return
	}

	if m := bindDirectiveRe.FindStringSubmatch(line); m != nil {
		body := m[2]
		if len(body) >= 2 && strings.HasPrefix(body, `"`) && strings.HasSuffix(body, `"`) {
			body = body[1 : len(body)-1]
		}
		result.Bindings[m[1]] = newBinding(m[1], body, lineNumber)
		return
	}

	result.Errors = append(result.Errors, ParseError{
		Line:    lineNumber,
		Content: line,
		Reason:  "Invalid keybind format",
	})
}

func newBinding(key, body string, lineNumber int) Binding {
	tokens := SplitCommandChain(body)
	commands := make([]CommandEntry, len(tokens))
	for i, tok := range tokens {
		commands[i] = NewCommandEntry(tok)
	}
	return Binding{
		Key:      key,
		Commands: commands,
		Line:     lineNumber,
		Raw:      body,
	}
}
