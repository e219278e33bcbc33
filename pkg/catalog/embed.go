package catalog

import (
	_ "embed"
)

//go:embed data/components.json
var embeddedComponents []byte

// Embedded returns the catalog document packaged with prismatic
func Embedded() []byte {
	return append([]byte(nil), embeddedComponents...)
}
