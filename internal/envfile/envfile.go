// Package envfile provides the minimal .env parsing the CLI needs to
// list variable names for display purposes. It has no bearing on vault
// semantics: the vault engine treats vault content as an opaque byte
// slice, so nothing here ever reconstructs or rewrites that content.
package envfile

import "strings"

// Entry is one KEY=VALUE pair, in file order.
type Entry struct {
	Key   string
	Value string
}

// Parse splits data into ordered KEY=VALUE entries, skipping blank lines
// and lines beginning with "#". It does not attempt quoting or escaping;
// values are taken verbatim after the first "=".
func Parse(data []byte) []Entry {
	var entries []Entry
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimRight(line, "\r")
		if trimmed == "" || strings.HasPrefix(strings.TrimSpace(trimmed), "#") {
			continue
		}
		key, value, ok := strings.Cut(trimmed, "=")
		if !ok {
			continue
		}
		entries = append(entries, Entry{Key: strings.TrimSpace(key), Value: value})
	}
	return entries
}

// Keys returns just the ordered key names of already-decrypted content,
// used by `get --keys` to show which variables a vault holds without
// printing their values.
func Keys(data []byte) []string {
	entries := Parse(data)
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}
