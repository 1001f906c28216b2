// Package serializer reads and writes value-type documents in various formats.
//
// The package supports three output formats:
//   - JSON: Machine-readable structured data with proper indentation
//   - YAML: Human-readable configuration format
//   - Table: Human-readable tabular output
//
// Usage:
//
//	writer := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer writer.Close() // Important: close to release file handles
//	if err := writer.Serialize(ctx, data); err != nil {
//		return err
//	}
//
// Values implementing Tabular render their own rows in table format; anything
// else is flattened into FIELD/VALUE pairs. Instances and ordered maps keep
// their attribute order in every format.
//
// Reading:
//
//	reader, err := serializer.NewFileReaderAuto(ctx, "cats.yaml")
//	if err != nil { return err }
//	defer reader.Close()
//	err = reader.Strict().Deserialize(&doc)
//
// File paths may also be http:// or https:// URLs, fetched with HttpReader.
package serializer
