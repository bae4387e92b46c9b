package device

import (
	"strings"
	"unicode"
)

// Entry associates a semantic key with a hardware LED index.
type Entry struct {
	Key rune
	LED uint32
}

// KeyMap maps semantic keys (printable characters) to hardware LED indices.
// Entries keep the order in which they were first associated.
type KeyMap struct {
	entries []Entry
	index   map[rune]int
}

func newKeyMap() *KeyMap {
	return &KeyMap{index: make(map[rune]int)}
}

// BuildKeyMap infers a key for every LED name. Alt-names are scanned before
// primary names, and the first LED associated with a character keeps it:
// a later name that resolves to an already-mapped character is ignored, even
// when it belongs to a different LED. As a consequence a primary name only
// wins for a character that no alt-name on the device produced.
//
// Alt-names at positions beyond the primary list are ignored.
func BuildKeyMap(names, altNames []string) *KeyMap {
	m := newKeyMap()
	for i, name := range altNames {
		if i >= len(names) {
			break
		}
		if key, ok := InferKey(name); ok {
			m.add(key, uint32(i))
		}
	}
	for i, name := range names {
		if key, ok := InferKey(name); ok {
			m.add(key, uint32(i))
		}
	}
	return m
}

// add records key -> led unless key is already mapped.
func (m *KeyMap) add(key rune, led uint32) {
	if _, ok := m.index[key]; ok {
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, LED: led})
}

// Lookup returns the LED index for key. ASCII letters match in either case.
func (m *KeyMap) Lookup(key rune) (uint32, bool) {
	if m == nil {
		return 0, false
	}
	i, ok := m.index[normalize(key)]
	if !ok {
		return 0, false
	}
	return m.entries[i].LED, true
}

// Len returns the number of mapped keys.
func (m *KeyMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Keys returns the mapped keys in association order.
func (m *KeyMap) Keys() []rune {
	keys := make([]rune, 0, m.Len())
	for _, e := range m.Entries() {
		keys = append(keys, e.Key)
	}
	return keys
}

// Entries returns a copy of the entries in association order.
func (m *KeyMap) Entries() []Entry {
	if m == nil {
		return nil
	}
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

func normalize(key rune) rune {
	if key < unicode.MaxASCII {
		return unicode.ToUpper(key)
	}
	return key
}

// InferKey extracts the character an LED name stands for:
//
//	"Key: A"    -> 'A'
//	"KEY B"     -> 'B'
//	"space bar" -> ' '
//	"Key1"      -> '1'
//	"Key: F1"   -> none (no single-character token)
//
// ASCII letters in names are upper-cased, a "KEY:" or "KEY" prefix is removed,
// and the rest is split on anything that is not an ASCII letter or digit; the
// first token of exactly one character is the key. Non-ASCII letters never
// fold onto ASCII ones.
func InferKey(name string) (rune, bool) {
	value := strings.Map(upperASCII, strings.TrimSpace(name))
	if strings.Contains(value, "SPACE") {
		return ' ', true
	}
	if rest, ok := strings.CutPrefix(value, "KEY:"); ok {
		value = strings.TrimSpace(rest)
	} else if rest, ok := strings.CutPrefix(value, "KEY"); ok {
		value = strings.TrimSpace(rest)
	}

	tokens := strings.FieldsFunc(value, func(r rune) bool { return !isASCIIAlnum(r) })
	for _, tok := range tokens {
		if len(tok) == 1 {
			return rune(tok[0]), true
		}
	}
	return 0, false
}

func upperASCII(r rune) rune {
	if 'a' <= r && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}

func isASCIIAlnum(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
}
