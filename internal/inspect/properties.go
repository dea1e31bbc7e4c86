package inspect

import "strings"

type propertyState int

const (
	propertyIdle propertyState = iota
	propertyAccumulating
)

// propertyMachine rebuilds Property records from the lines of an
// "Element Properties:" section. Every exit path (new header, blank line, end
// of input) goes through finalize.
type propertyMachine struct {
	tokens FlagTokens

	state    propertyState
	current  Property
	enumOpen bool
	out      []Property
}

func (m *propertyMachine) feed(line classifiedLine) {
	switch line.kind {
	case lineBlank:
		m.finalize()
	case linePropertyStart:
		m.finalize()
		m.state = propertyAccumulating
		m.current = Property{Name: line.name, Description: line.description}
	default:
		if m.state != propertyAccumulating {
			return
		}
		m.continueWith(line)
	}
}

func (m *propertyMachine) continueWith(line classifiedLine) {
	switch line.kind {
	case lineFlags:
		flags := m.tokens.match(line.flagsPayload)
		m.current.Readable = flags.readable
		m.current.Writable = flags.writable
		m.current.Controllable = flags.controllable
		return
	case lineEnumEntry:
		if m.enumOpen {
			m.current.EnumValues = append(m.current.EnumValues, line.enumLabels...)
		}
		return
	}

	if line.hasTypeLine {
		m.current.Type = line.typeName
		if line.rangeValue != "" {
			m.current.Range = line.rangeValue
		}
		if line.defaultVal != "" {
			m.current.Default = line.defaultVal
		}
	}
	if line.kind == lineEnum {
		m.enumOpen = true
		m.current.EnumValues = append(m.current.EnumValues, line.enumLabels...)
		if m.current.Type == "" {
			m.current.Type = "Enum"
		}
		if m.current.Default == "" {
			if _, value, ok := strings.Cut(line.trimmed, "Default:"); ok {
				m.current.Default = strings.TrimSpace(value)
			}
		}
	}
}

func (m *propertyMachine) finalize() {
	if m.state == propertyAccumulating && m.current.Name != "" {
		m.out = append(m.out, m.current)
	}
	m.state = propertyIdle
	m.current = Property{}
	m.enumOpen = false
}

// parseProperties consumes a properties section. prefix is the per-line element
// prefix, or empty for single-element reports.
func (p *Parser) parseProperties(section, prefix string) []Property {
	machine := &propertyMachine{tokens: p.tokens}
	for _, raw := range strings.Split(section, "\n") {
		machine.feed(classifyPropertyLine(stripPrefix(raw, prefix)))
	}
	machine.finalize()
	return machine.out
}
