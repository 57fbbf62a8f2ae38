// Package embedded provides access to embedded theme configuration files.
package embedded

import _ "embed"

// DefaultThemeData contains the embedded default theme YAML data.
//
//go:embed themes/default.yaml
var DefaultThemeData []byte
