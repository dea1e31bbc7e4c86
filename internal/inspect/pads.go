package inspect

import "strings"

type padState int

const (
	padIdle padState = iota
	padAccumulating
	padInCapabilities
)

// padMachine rebuilds PadTemplate records from a "Pad Templates:" section.
type padMachine struct {
	state   padState
	current PadTemplate
	caps    []string
	out     []PadTemplate
}

func (m *padMachine) inCapabilities() bool {
	return m.state == padInCapabilities
}

func (m *padMachine) feed(line classifiedLine) {
	switch line.kind {
	case lineBlank:
		return
	case linePadHeader:
		m.finalize()
		m.state = padAccumulating
		m.current = PadTemplate{Name: line.name, Direction: line.direction, Presence: PresenceUnset}
		return
	}
	if m.state == padIdle {
		return
	}

	switch line.kind {
	case lineAvailability:
		if presence, ok := presenceFromAvailability(line.trimmed); ok {
			m.current.Presence = presence
		}
	case lineCapabilitiesMarker:
		m.state = padInCapabilities
	case lineCapabilityEnd:
		m.state = padAccumulating
	case lineCapability:
		m.caps = append(m.caps, line.trimmed)
	}
}

func (m *padMachine) finalize() {
	if m.state != padIdle && m.current.Name != "" {
		m.current.Caps = strings.Join(m.caps, "\n")
		m.out = append(m.out, m.current)
	}
	m.state = padIdle
	m.current = PadTemplate{}
	m.caps = nil
}

// parsePadTemplates consumes a pad templates section.
func (p *Parser) parsePadTemplates(section, prefix string) []PadTemplate {
	machine := &padMachine{}
	for _, raw := range strings.Split(section, "\n") {
		machine.feed(classifyPadLine(stripPrefix(raw, prefix), machine.inCapabilities()))
	}
	machine.finalize()
	return machine.out
}
