// Package internaldefs holds the counter definitions shared by the
// metric exporters. It is internal to the export packages; applications
// consume the exporters, not these tables.
package internaldefs
