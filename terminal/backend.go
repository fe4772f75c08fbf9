package terminal

// Backend abstracts the platform-specific terminal handle so the rendering
// surface and the input reader can be exercised against an in-memory
// implementation in tests.
type Backend interface {
	// Lifecycle
	Init() error
	Fini()

	// Size returns current terminal dimensions (columns, rows)
	Size() (width, height int)

	// Write writes raw bytes to the terminal output. Satisfies io.Writer so
	// the surface can layer a bufio.Writer on top.
	Write(p []byte) (int, error)

	// Read blocks until input is available, the stop channel is closed, an
	// error occurs, or the poll interval elapses (empty result, nil error).
	Read(stopCh <-chan struct{}) ([]byte, error)

	// SetResizeHandler registers a callback for terminal resize events.
	SetResizeHandler(handler func(width, height int))
}
