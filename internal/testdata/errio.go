package testdata

// ErrReader is an io.Reader which always fails with Err.
type ErrReader struct {
	Err error
}

func (e *ErrReader) Read(_ []byte) (n int, err error) {
	return 0, e.Err
}

// ErrWriter is an io.Writer which always fails with Err.
type ErrWriter struct {
	Err error
}

func (e *ErrWriter) Write(_ []byte) (n int, err error) {
	return 0, e.Err
}
