// Package ids generates the prefixed identifiers used by the API server,
// e.g. "itm-V1StGXR8_Z5jdHi6B-myT".
package ids

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes of the server's resource identifiers.
const (
	ItemPrefix = "itm"
	TagPrefix  = "tag"
	UserPrefix = "usr"
)

// Generate returns prefix-<nanoid>.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}
