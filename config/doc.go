// Package config holds the validated, immutable representation of
// routing rules: which categories and severities go to which
// destination, in what format.
//
// Configurations are parsed from YAML or JSON documents with Parse,
// validated, and then handed to the router package for compilation.
// Once compiled they are never mutated.
package config
