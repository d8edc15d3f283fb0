package geocoding

import "strings"

// addressFieldOrder is the component order for compact address rendering.
var addressFieldOrder = []string{"name", "street", "district", "city", "state", "postcode"}

// FormatAddress renders place properties as a compact comma-joined address,
// omitting empty components. The street component absorbs a house number when
// one is present.
func FormatAddress(props map[string]string) string {
	parts := make([]string, 0, len(addressFieldOrder))

	for _, field := range addressFieldOrder {
		value := strings.TrimSpace(props[field])
		if value == "" {
			continue
		}
		if field == "street" {
			if num := strings.TrimSpace(props["housenumber"]); num != "" {
				value = value + " " + num
			}
		}
		parts = append(parts, value)
	}

	return strings.Join(parts, ", ")
}
