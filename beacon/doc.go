// Package beacon maps beacon identifiers to grid positions.
//
// A Registry holds one canonical position per beacon and a single alias
// table for alternate identifier encodings (advertised UUIDs, MAC
// addresses, major/minor strings). Resolution order is fixed:
//
//  1. exact canonical id,
//  2. exact alias,
//  3. folded form (case-insensitive, '-', ':' and spaces removed) of
//     either; ambiguous folded keys never resolve.
//
// Registries are filled once, while a venue is loaded, and are read-only
// afterwards, so concurrent Resolve/Position calls need no locking.
package beacon
