package tokebi

import "time"

// Clock abstracts time for deterministic tests. Event timestamps and the
// timestamp half of generated IDs come from here.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}
