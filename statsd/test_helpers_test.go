package statsd

import (
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/nettest"
)

// fixedSource replays draws through rand.Rand.Float64: a value u in [0,1)
// is encoded so that Float64 returns exactly u.
type fixedSource struct {
	sync.Mutex
	draws []float64
	idx   int
}

func newFixedSource(draws ...float64) *fixedSource {
	return &fixedSource{draws: draws}
}

func (s *fixedSource) Uint64() uint64 {
	s.Lock()
	defer s.Unlock()
	u := s.draws[s.idx%len(s.draws)]
	s.idx++
	return uint64(u * (1 << 53))
}

// recordingWriter keeps a copy of every datagram written through it.
type recordingWriter struct {
	sync.Mutex
	data   []string
	closed bool
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	w.Lock()
	defer w.Unlock()
	w.data = append(w.data, string(p))
	return len(p), nil
}

func (w *recordingWriter) Close() error {
	w.Lock()
	defer w.Unlock()
	w.closed = true
	return nil
}

func (w *recordingWriter) datagrams() []string {
	w.Lock()
	defer w.Unlock()
	return append([]string(nil), w.data...)
}

func enabledConfig() Config {
	cfg := DefaultConfig()
	cfg.Enable = true
	return cfg
}

func newRecordingClient(t *testing.T, cfg Config, options ...Option) (*Client, *recordingWriter) {
	w := &recordingWriter{}
	client, err := NewWithWriter(w, cfg, options...)
	require.NoError(t, err)
	return client, w
}

// testServer acts as a fake StatsD server and keeps track of what was sent to
// a client.
type testServer struct {
	sync.Mutex

	conn net.PacketConn
	data []string
	done chan struct{}
}

func newTestServer(t *testing.T, network string) *testServer {
	conn, err := nettest.NewLocalPacketListener(network)
	require.NoError(t, err)

	ts := &testServer{
		conn: conn,
		done: make(chan struct{}),
	}
	go ts.start()
	t.Cleanup(ts.stop)
	return ts
}

func (ts *testServer) start() {
	defer close(ts.done)
	buffer := make([]byte, 65536)
	for {
		n, _, err := ts.conn.ReadFrom(buffer)
		if err != nil {
			// connection has been closed
			return
		}
		ts.Lock()
		ts.data = append(ts.data, string(buffer[:n]))
		ts.Unlock()
	}
}

func (ts *testServer) stop() {
	ts.conn.Close()
	<-ts.done
}

// config returns an enabled client configuration pointing at the server.
func (ts *testServer) config(t *testing.T) Config {
	host, port, err := net.SplitHostPort(ts.conn.LocalAddr().String())
	require.NoError(t, err)
	p, err := net.LookupPort("udp", port)
	require.NoError(t, err)

	cfg := enabledConfig()
	cfg.Host = host
	cfg.Port = uint16(p)
	return cfg
}

func (ts *testServer) getData() []string {
	ts.Lock()
	defer ts.Unlock()
	return append([]string(nil), ts.data...)
}

// waitFor blocks until the server received n datagrams.
func (ts *testServer) waitFor(t *testing.T, n int) []string {
	require.Eventually(t, func() bool {
		return len(ts.getData()) >= n
	}, 2*time.Second, 5*time.Millisecond, "expected %d datagrams", n)
	return ts.getData()
}

func (ts *testServer) assertMetric(t *testing.T, expected []string) {
	received := ts.waitFor(t, len(expected))
	assert.ElementsMatch(t, expected, received, "received: %s", strings.Join(received, ", "))
}
