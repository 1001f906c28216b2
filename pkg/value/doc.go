// Package value holds the capability contract for attribute values.
//
// Stored attribute values are plain Go values (any). Instances need three
// things from them: equality, a stable hash, and a literal rendering for
// error messages and text output. Values can opt in by implementing Equaler,
// StrictEqualer, Hasher and Inspecter; everything else falls back to
// reflection:
//
//   - Equal recurses into slices, arrays and maps so nested Equalers are
//     honoured, and uses reflect.DeepEqual for the rest. StrictEqual does the
//     same but prefers StrictEqualer on nested values.
//   - Hash walks the value structurally with xxhash, following pointers and
//     struct fields the way reflect.DeepEqual does. Values equal under
//     StrictEqual hash identically.
//   - Inspect renders strings quoted, nil as "nil", slices as [a, b] and
//     maps as {k => v} with keys in sorted order.
package value
