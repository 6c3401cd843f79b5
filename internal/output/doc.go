// Package output writes metrics in the supported file formats.
//
// # Formats
//
//   - CSV: one header line with the row schema, then one record per row.
//     Numbers use the shortest exact decimal form ("0", "1.5").
//   - JSON: either an array of row objects (flattened output) or the space
//     tree as a nested object (raw output), indented with two spaces.
//
// The raw tree has no CSV rendering; callers promote such requests to JSON
// before reaching this package.
//
// # Files
//
// WriteFile replaces its destination atomically: content goes to a temporary
// file in the destination directory, which is renamed into place once fully
// written. Concurrent writers of the same path never interleave; the last
// rename wins.
package output
