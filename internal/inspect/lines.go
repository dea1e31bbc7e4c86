package inspect

import (
	"regexp"
	"strings"
)

// lineKind tags a single line of an inspect report after classification.
type lineKind int

const (
	lineOther lineKind = iota
	lineBlank
	linePropertyStart
	lineFlags
	lineType
	lineEnum
	lineEnumEntry
	linePadHeader
	lineAvailability
	lineCapabilitiesMarker
	lineCapability
	lineCapabilityEnd
)

func (k lineKind) String() string {
	switch k {
	case lineBlank:
		return "blank"
	case linePropertyStart:
		return "property-start"
	case lineFlags:
		return "flags"
	case lineType:
		return "type"
	case lineEnum:
		return "enum"
	case lineEnumEntry:
		return "enum-entry"
	case linePadHeader:
		return "pad-header"
	case lineAvailability:
		return "availability"
	case lineCapabilitiesMarker:
		return "capabilities-marker"
	case lineCapability:
		return "capability"
	case lineCapabilityEnd:
		return "capability-end"
	default:
		return "other"
	}
}

var (
	propertyStartPattern = regexp.MustCompile(`^\s*(\w+(?:-\w+)*)\s*:\s*(.+)$`)
	typePattern          = regexp.MustCompile(`^(\w+(?:\s+\w+)*)\.\s*(?:Range:\s*(.+?))?\s*(?:Default:\s*(.+))?$`)
	enumPairPattern      = regexp.MustCompile(`\((\d+)\):\s*([\w-]+)`)
	enumEntryPattern     = regexp.MustCompile(`^\((\d+)\):\s*([\w-]+)`)
	padHeaderPattern     = regexp.MustCompile(`^\s*(SRC|SINK)\s+template:\s*'([^']+)'`)
)

var (
	capabilityPrefixes = []string{"video/", "audio/", "application/", "text/", "image/"}
	capabilityMarkers  = []string{"format:", "systemstream:"}
	capabilityEnds     = []string{"Element has", "URI handling", "Pads:"}
)

// classifiedLine is the tagged result for one line. Only the fields that belong
// to the kind are populated.
type classifiedLine struct {
	kind    lineKind
	trimmed string

	name        string
	description string

	flagsPayload string

	typeName    string
	rangeValue  string
	defaultVal  string
	hasTypeLine bool

	enumLabels []string

	direction Direction
}

// stripPrefix removes the "<element>:" prefix gst-inspect --print-all puts in
// front of every line of an element's block.
func stripPrefix(line, prefix string) string {
	line = strings.TrimRight(line, "\r")
	if prefix == "" {
		return line
	}
	if rest, ok := strings.CutPrefix(line, prefix); ok {
		return rest
	}
	return line
}

// classifyPropertyLine tags a line from an "Element Properties:" section. A
// line can be both a type line and an enum line; the flags and start kinds are
// exclusive.
func classifyPropertyLine(body string) classifiedLine {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return classifiedLine{kind: lineBlank}
	}
	out := classifiedLine{kind: lineOther, trimmed: trimmed}

	if payload, ok := strings.CutPrefix(trimmed, "flags:"); ok {
		out.kind = lineFlags
		out.flagsPayload = payload
		return out
	}

	if !isReservedLabel(trimmed) {
		if m := propertyStartPattern.FindStringSubmatch(body); m != nil {
			out.kind = linePropertyStart
			out.name = m[1]
			out.description = strings.TrimSpace(m[2])
			return out
		}
	}

	if m := typePattern.FindStringSubmatch(trimmed); m != nil {
		out.kind = lineType
		out.hasTypeLine = true
		out.typeName = m[1]
		out.rangeValue = strings.TrimSpace(m[2])
		out.defaultVal = strings.TrimSpace(m[3])
	}

	if strings.Contains(trimmed, "Enum") && strings.Contains(trimmed, "Default:") {
		out.kind = lineEnum
		for _, pair := range enumPairPattern.FindAllStringSubmatch(trimmed, -1) {
			out.enumLabels = append(out.enumLabels, pair[2])
		}
		return out
	}

	if out.kind == lineOther {
		if m := enumEntryPattern.FindStringSubmatch(trimmed); m != nil {
			out.kind = lineEnumEntry
			out.enumLabels = []string{m[2]}
		}
	}
	return out
}

// isReservedLabel guards continuation labels that would otherwise look like a
// "<name> : <description>" header.
func isReservedLabel(trimmed string) bool {
	for _, label := range []string{"Default:", "Range:"} {
		if strings.HasPrefix(trimmed, label) {
			return true
		}
	}
	return false
}

// classifyPadLine tags a line from a "Pad Templates:" section. Capability lines
// are only recognised while inside a "Capabilities:" block.
func classifyPadLine(body string, inCapabilities bool) classifiedLine {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return classifiedLine{kind: lineBlank}
	}
	out := classifiedLine{kind: lineOther, trimmed: trimmed}

	if m := padHeaderPattern.FindStringSubmatch(body); m != nil {
		out.kind = linePadHeader
		out.direction = Direction(m[1])
		out.name = m[2]
		return out
	}
	if strings.Contains(trimmed, "Availability:") {
		out.kind = lineAvailability
		return out
	}
	if strings.Contains(trimmed, "Capabilities:") {
		out.kind = lineCapabilitiesMarker
		return out
	}
	if !inCapabilities {
		return out
	}
	if containsAny(trimmed, capabilityEnds) {
		out.kind = lineCapabilityEnd
		return out
	}
	if hasAnyPrefix(trimmed, capabilityPrefixes) || containsAny(trimmed, capabilityMarkers) {
		out.kind = lineCapability
	}
	return out
}

// presenceFromAvailability picks the first known keyword in declaration order.
func presenceFromAvailability(line string) (Presence, bool) {
	switch {
	case strings.Contains(line, "Always"):
		return PresenceAlways, true
	case strings.Contains(line, "Sometimes"):
		return PresenceSometimes, true
	case strings.Contains(line, "On request"):
		return PresenceRequest, true
	default:
		return "", false
	}
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
