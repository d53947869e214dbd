// Package clipboard provides handlers for copy, cut and paste.
//
// OS_COPY and OS_CUT call the zone's OnCopy or OnCut callback once with the
// zone cursor. The callback builds the payload and returns an
// OS_CLIPBOARD_WRITE command carrying it, which stores the structured
// payload and writes its text to the system clipboard.
//
// OS_PASTE offers the stored payload to the active zone and then to each
// ancestor zone until one accepts it. When no zone accepts, the result is a
// no-op with the message "rejected".
package clipboard
