// Package store reads and writes project documents.
//
// A project document is the serialized form of a model.Project, using the
// json/yaml field tags of the model package as its schema. Two encodings
// are supported, chosen by file extension:
//
//   - .yaml / .yml: YAML, decoded and encoded with gopkg.in/yaml.v3
//   - anything else: JSON, with // and /* */ comments and trailing commas
//     stripped by github.com/tidwall/jsonc before decoding
//
// All file access goes through github.com/viant/afs, so a document URL can
// be a plain path, a file:// URL, or any scheme afs has a manager for.
//
// The store is an outer layer: the merge engine never imports it.
package store
