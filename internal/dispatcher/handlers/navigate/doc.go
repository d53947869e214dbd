// Package navigate provides handlers for directional navigation inside
// a zone.
//
// OS_NAVIGATE picks the algorithm from the zone's configuration: spatial
// zones move by item geometry and remember a sticky cross-axis coordinate,
// other zones rove through their item order. A move blocked at the edge of a
// seamless zone continues into a sibling zone. Shift+Arrow extends the
// selection of multiple-select zones from the anchor.
//
// OS_TYPEAHEAD, OS_EXPAND and OS_COLLAPSE are handled here as well.
package navigate
