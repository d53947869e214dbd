// Package zones provides handlers for the zone lifecycle.
//
// Zones mount, update their items and unmount through commands so the
// registry and the focus state change together inside a dispatch:
//
//   - OS_ZONE_REGISTER adds or replaces a zone and focuses its entry item
//     when the zone auto-focuses
//   - OS_ZONE_ITEMS replaces a zone's items
//   - OS_ZONE_UNREGISTER removes a zone and its state
//
// Removed items are not pruned from the focus state. Stored ids resolve
// lazily against the live items, and focus moves off a removed item through
// an OS_RECOVER follow-up.
package zones
