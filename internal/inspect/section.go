package inspect

import "strings"

// Section markers printed by gst-inspect. The order is fixed; it only matters
// for documentation since extraction picks the earliest following marker.
const (
	SectionFactoryDetails = "Factory Details:"
	SectionPadTemplates   = "Pad Templates:"
	SectionProperties     = "Element Properties:"
	SectionSignals        = "Element Signals:"
	SectionActions        = "Element Actions:"
)

var sectionMarkers = []string{
	SectionFactoryDetails,
	SectionPadTemplates,
	SectionProperties,
	SectionSignals,
	SectionActions,
}

// ExtractSection returns the text between the first occurrence of sectionName
// and the nearest following occurrence of any other known section marker, or
// the end of text. It returns "" when sectionName does not occur. Sections may
// appear in any order.
func ExtractSection(text, sectionName string) string {
	if sectionName == "" {
		return ""
	}
	idx := strings.Index(text, sectionName)
	if idx < 0 {
		return ""
	}
	start := idx + len(sectionName)
	end := len(text)
	for _, marker := range sectionMarkers {
		if marker == sectionName {
			continue
		}
		if pos := strings.Index(text[start:], marker); pos >= 0 && start+pos < end {
			end = start + pos
		}
	}
	return text[start:end]
}
