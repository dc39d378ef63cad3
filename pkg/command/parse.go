package command

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// parseCommand returns the lowercased command keyword of text when text
// starts with one of the prefix characters. A trailing @botname is dropped.
func parseCommand(text, prefixes string) (string, bool) {
	text = strings.TrimLeftFunc(text, unicode.IsSpace)
	r, size := utf8.DecodeRuneInString(text)
	if r == utf8.RuneError || !strings.ContainsRune(prefixes, r) {
		return "", false
	}
	fields := strings.Fields(text[size:])
	if len(fields) == 0 {
		return "", false
	}
	name := fields[0]
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return "", false
	}
	return strings.ToLower(name), true
}

// splitToken cuts the first whitespace separated token off s.
func splitToken(s string) (string, string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
}

// commandContext splits "<cmd> <type> <payload...>" keeping the payload's
// inner spacing.
func commandContext(text string) (typ, payload string) {
	_, rest := splitToken(text)
	typ, payload = splitToken(rest)
	return strings.ToLower(typ), strings.TrimSpace(payload)
}

// commandArgs returns every token after the command keyword.
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return nil
	}
	return fields[1:]
}

func in(name string, list []string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}
