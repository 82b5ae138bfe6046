package statsd

import (
	"bufio"
	"io"
	"os"
)

var (
	defaultStdoutPrefix = []byte("STATSD|")
	defaultStdoutSuffix = []byte("\n")
)

// stdOutWriter prints every datagram as one line instead of sending it.
// This is useful for dry runs or to inspect what a process would emit.
type stdOutWriter struct {
	prefix []byte
	suffix []byte
	output io.Writer // by default it's stdout
}

// NewStdoutWriter returns a writer for NewWithWriter printing each datagram
// on its own line, preceded by prefix. An empty prefix selects "STATSD|", a
// nil output selects os.Stdout.
func NewStdoutWriter(output io.Writer, prefix string) io.WriteCloser {
	w := &stdOutWriter{
		prefix: defaultStdoutPrefix,
		suffix: defaultStdoutSuffix,
		output: output,
	}
	if prefix != "" {
		w.prefix = []byte(prefix)
	}
	if w.output == nil {
		w.output = os.Stdout
	}
	return w
}

// Write prints data as one line. The returned count is len(data) on success
// so the client does not report a short write.
func (w *stdOutWriter) Write(data []byte) (n int, err error) {
	buf := bufio.NewWriter(w.output)
	buf.Write(w.prefix)
	buf.Write(data)
	buf.Write(w.suffix)
	if err := buf.Flush(); err != nil {
		return 0, err
	}
	return len(data), nil
}

// Close stdout writer, does nothing.
func (w *stdOutWriter) Close() error {
	return nil
}
