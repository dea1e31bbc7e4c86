package inspect

import "strings"

// FlagTokens maps the words gst-inspect prints on a property "flags:" line to
// the three access flags. The words depend on the tool's runtime locale, so the
// table is configurable. Matching is case-insensitive on whole tokens.
type FlagTokens struct {
	Readable     []string
	Writable     []string
	Controllable []string
}

// DefaultFlagTokens covers the English and German renderings of the tool.
func DefaultFlagTokens() FlagTokens {
	return FlagTokens{
		Readable:     []string{"readable", "lesbar"},
		Writable:     []string{"writable", "schreibbar"},
		Controllable: []string{"controllable", "steuerbar"},
	}
}

// Merge returns a table holding the union of both tables' tokens.
func (t FlagTokens) Merge(other FlagTokens) FlagTokens {
	return FlagTokens{
		Readable:     mergeTokens(t.Readable, other.Readable),
		Writable:     mergeTokens(t.Writable, other.Writable),
		Controllable: mergeTokens(t.Controllable, other.Controllable),
	}
}

// IsEmpty reports whether no tokens are configured at all.
func (t FlagTokens) IsEmpty() bool {
	return len(t.Readable) == 0 && len(t.Writable) == 0 && len(t.Controllable) == 0
}

type flagSet struct {
	readable     bool
	writable     bool
	controllable bool
}

// match splits the payload after "flags:" on commas and looks up each token.
// Unknown tokens (state notes such as "changeable only in NULL or READY state")
// are ignored.
func (t FlagTokens) match(payload string) flagSet {
	var out flagSet
	for _, raw := range strings.Split(payload, ",") {
		token := strings.ToLower(strings.TrimSpace(raw))
		if token == "" {
			continue
		}
		switch {
		case containsToken(t.Readable, token):
			out.readable = true
		case containsToken(t.Writable, token):
			out.writable = true
		case containsToken(t.Controllable, token):
			out.controllable = true
		}
	}
	return out
}

func containsToken(tokens []string, token string) bool {
	for _, candidate := range tokens {
		if strings.EqualFold(strings.TrimSpace(candidate), token) {
			return true
		}
	}
	return false
}

func mergeTokens(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, token := range list {
			normalized := strings.ToLower(strings.TrimSpace(token))
			if normalized == "" {
				continue
			}
			if _, ok := seen[normalized]; ok {
				continue
			}
			seen[normalized] = struct{}{}
			out = append(out, normalized)
		}
	}
	return out
}
