package statsd

import (
	"strconv"
	"strings"
	"sync"
)

// MetricType is the type tag of a StatsD line.
type MetricType uint8

const (
	// Counter lines are summed by the server over a flush interval.
	Counter MetricType = iota
	// Gauge lines set the last known value.
	Gauge
	// Timing lines are millisecond samples.
	Timing
)

var (
	countSymbol  = []byte("c")
	gaugeSymbol  = []byte("g")
	timingSymbol = []byte("ms")
)

func (t MetricType) valid() bool {
	return t <= Timing
}

func (t MetricType) symbol() []byte {
	switch t {
	case Counter:
		return countSymbol
	case Gauge:
		return gaugeSymbol
	case Timing:
		return timingSymbol
	}
	return nil
}

// String returns the wire symbol of the type.
func (t MetricType) String() string {
	if s := t.symbol(); s != nil {
		return string(s)
	}
	return "MetricType(" + strconv.Itoa(int(t)) + ")"
}

// hostnameToken is replaced by the node tag in metric keys.
const hostnameToken = "{HOSTNAME}"

const defaultBufferSize = 512

var bufferPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, defaultBufferSize)
		return &b
	},
}

func borrowBuffer() *[]byte {
	return bufferPool.Get().(*[]byte)
}

func returnBuffer(b *[]byte) {
	// don't keep the occasional huge key around
	if cap(*b) > 64*defaultBufferSize {
		return
	}
	bufferPool.Put(b)
}

// unsafeKeyByte reports whether b would break the line grammar.
func unsafeKeyByte(b byte) bool {
	switch b {
	case ':', '|', '@', ' ':
		return true
	}
	return b < 0x20 || b == 0x7f
}

// appendSanitized appends s with every unsafe byte replaced by '_'.
func appendSanitized(buffer []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		if b := s[i]; unsafeKeyByte(b) {
			buffer = append(buffer, '_')
		} else {
			buffer = append(buffer, b)
		}
	}
	return buffer
}

// Sanitize replaces the bytes that are unsafe in a StatsD key (':', '|', '@',
// space and every ASCII control character, which covers tab and newline) with
// '_'. It is idempotent.
func Sanitize(key string) string {
	clean := true
	for i := 0; i < len(key); i++ {
		if unsafeKeyByte(key[i]) {
			clean = false
			break
		}
	}
	if clean {
		return key
	}
	return string(appendSanitized(make([]byte, 0, len(key)), key))
}

// CleanKey returns the key as it is written on the wire, without namespace:
// {HOSTNAME} is replaced by nodeTag and the result is sanitized.
func CleanKey(key, nodeTag string) string {
	return string(appendKey(nil, key, nodeTag))
}

// appendKey substitutes the node tag for {HOSTNAME} and sanitizes. Without a
// node tag a dotted segment emptied by the removal is dropped along with its
// separator, so "net.{HOSTNAME}.rx" becomes "net.rx".
func appendKey(buffer []byte, key, nodeTag string) []byte {
	// fastpath for keys without the token
	if !strings.Contains(key, hostnameToken) {
		return appendSanitized(buffer, key)
	}

	first := true
	for {
		i := strings.IndexByte(key, '.')
		segment := key
		if i >= 0 {
			segment = key[:i]
		}
		keep := true
		if strings.Contains(segment, hostnameToken) {
			segment = strings.ReplaceAll(segment, hostnameToken, nodeTag)
			keep = segment != ""
		}
		if keep {
			if !first {
				buffer = append(buffer, '.')
			}
			buffer = appendSanitized(buffer, segment)
			first = false
		}
		if i < 0 {
			return buffer
		}
		key = key[i+1:]
	}
}

func appendHeader(buffer []byte, prefix, key, nodeTag string) []byte {
	if prefix != "" {
		buffer = append(buffer, prefix...)
	}
	buffer = appendKey(buffer, key, nodeTag)
	buffer = append(buffer, ':')
	return buffer
}

func appendRate(buffer []byte, rate float64) []byte {
	if rate < 1 {
		buffer = append(buffer, "|@"...)
		buffer = strconv.AppendFloat(buffer, rate, 'f', -1, 64)
	}
	return buffer
}

func appendIntegerMetric(buffer []byte, metricType MetricType, prefix, key, nodeTag string, value int64, rate float64) []byte {
	buffer = appendHeader(buffer, prefix, key, nodeTag)
	buffer = strconv.AppendInt(buffer, value, 10)
	buffer = append(buffer, '|')
	buffer = append(buffer, metricType.symbol()...)
	buffer = appendRate(buffer, rate)
	return buffer
}

// appendFloatMetric writes value in fixed notation with the shortest
// representation that round-trips.
func appendFloatMetric(buffer []byte, metricType MetricType, prefix, key, nodeTag string, value float64, rate float64) []byte {
	buffer = appendHeader(buffer, prefix, key, nodeTag)
	buffer = strconv.AppendFloat(buffer, value, 'f', -1, 64)
	buffer = append(buffer, '|')
	buffer = append(buffer, metricType.symbol()...)
	buffer = appendRate(buffer, rate)
	return buffer
}
