package clipboard

// Chain is the part of the zone tree paste bubbles through.
type Chain interface {
	Ancestors(id string) []string
}

// Bubble offers a paste to zoneID and then to each ancestor, nearest first,
// until accept reports true. It returns the accepting zone.
func Bubble(t Chain, zoneID string, accept func(zoneID string) bool) (string, bool) {
	if zoneID == "" {
		return "", false
	}
	if accept(zoneID) {
		return zoneID, true
	}
	for _, id := range t.Ancestors(zoneID) {
		if accept(id) {
			return id, true
		}
	}
	return "", false
}
