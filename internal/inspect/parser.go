package inspect

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	longNamePattern    = fieldPattern("Long-name")
	klassPattern       = fieldPattern("Klass")
	descriptionPattern = fieldPattern("Description")
	authorPattern      = fieldPattern("Author")
	rankPattern        = regexp.MustCompile(`(?m)^(?:\w+:)?[ \t]*Rank[ \t]+(\w+)[ \t]+\((\d+)\)`)
)

// fieldPattern matches a single-line "<prefix>: <Label> <value>" factory detail.
// The prefix is optional so single-element reports parse too.
func fieldPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^(?:\w+:)?[ \t]*` + regexp.QuoteMeta(label) + `[ \t]+(.+)$`)
}

// Option configures a Parser.
type Option func(*Parser)

// WithFlagTokens replaces the flag token table. An empty table is ignored.
func WithFlagTokens(tokens FlagTokens) Option {
	return func(p *Parser) {
		if !tokens.IsEmpty() {
			p.tokens = tokens
		}
	}
}

// Parser turns gst-inspect report text into Element records. It holds no
// per-call state and is safe for concurrent use.
type Parser struct {
	tokens FlagTokens
}

// NewParser constructs a parser using DefaultFlagTokens unless overridden.
func NewParser(opts ...Option) *Parser {
	p := &Parser{tokens: DefaultFlagTokens()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FlagTokens returns the table used for "flags:" lines.
func (p *Parser) FlagTokens() FlagTokens {
	return p.tokens
}

// ParseElement builds one Element from a single element's report text. Every
// field is optional; missing fields keep their zero value. Name is left empty
// for the caller to assign.
func (p *Parser) ParseElement(text string) Element {
	var element Element
	element.LongName = firstField(longNamePattern, text)
	element.Classification = firstField(klassPattern, text)
	element.Description = firstField(descriptionPattern, text)
	element.Author = firstField(authorPattern, text)
	element.Rank, _ = parseRank(text)

	prefix := linePrefix(text)
	if section := ExtractSection(text, SectionProperties); section != "" {
		element.Properties = p.parseProperties(section, prefix)
	}
	if section := ExtractSection(text, SectionPadTemplates); section != "" {
		element.PadTemplates = p.parsePadTemplates(section, prefix)
	}
	return element
}

// ParseChunk parses a segmented chunk and stamps the element name on it.
func (p *Parser) ParseChunk(name, text string) Element {
	element := p.ParseElement(text)
	element.Name = name
	return element
}

func firstField(pattern *regexp.Regexp, text string) string {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// parseRank returns the rank token and its numeric value. The numeric value is
// not part of the Element record.
func parseRank(text string) (string, int) {
	m := rankPattern.FindStringSubmatch(text)
	if m == nil {
		return "", 0
	}
	value, err := strconv.Atoi(m[2])
	if err != nil {
		value = 0
	}
	return m[1], value
}

// linePrefix returns "<name>:" when text opens with a --print-all element line.
func linePrefix(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if m := elementOpenPattern.FindStringSubmatch(line); m != nil {
			return m[1] + ":"
		}
		return ""
	}
	return ""
}
