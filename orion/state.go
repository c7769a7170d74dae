package orion

//go:generate go tool stringer -type=LoopState -trimprefix=Loop

type LoopState uint32

const (
	LoopUninitialized LoopState = iota

	// waiting for the engine to initialize
	LoopStarting

	LoopRunning

	// terminal, engine resources are released
	LoopCancelled

	// terminal, the engine failed to initialize
	LoopFailed
)

func (s LoopState) Terminal() bool {
	return s == LoopCancelled || s == LoopFailed
}
