package adapters

import "fmt"

// Placeholder stands in for sources that only render their conditions with
// JavaScript. It reports Available() == false so the pipeline skips the
// fetch entirely and falls back to last-known-good data.
type Placeholder struct {
	kind string
}

func (a *Placeholder) Kind() string    { return a.kind }
func (a *Placeholder) Available() bool { return false }

func (a *Placeholder) Parse(content string) (*Result, error) {
	return nil, fmt.Errorf("source %q requires JavaScript rendering", a.kind)
}
