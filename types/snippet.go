package types

import (
	"time"
)

// Snippet is a Spec that was built and stored by the server, along with the markup it produced.
type Snippet struct {
	Id      string
	Spec    Spec
	Markup  string
	Created time.Time
}
