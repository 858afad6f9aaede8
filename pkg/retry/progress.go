package retry

// Progress is a phase-transition snapshot pushed to observers during
// DoWithProgress. It is decoupled from any UI reactivity system; callers
// bridge it to whatever surface they drive.
type Progress struct {
	InProgress  bool
	Attempt     int
	MaxAttempts int
	Status      string
}

// ProgressFunc receives progress updates. It is invoked synchronously from
// the retry loop and must not block.
type ProgressFunc func(Progress)
