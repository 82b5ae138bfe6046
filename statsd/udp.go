package statsd

import (
	"net"
	"net/netip"
)

// udpWriter is an internal class wrapping around management of UDP connection
type udpWriter struct {
	conn *net.UDPConn
	addr netip.AddrPort
}

// newUDPWriter opens an unbound, unconnected socket of the family of addr.
// Every datagram carries addr as its destination.
func newUDPWriter(addr netip.AddrPort) (*udpWriter, error) {
	network := "udp6"
	if addr.Addr().Is4() {
		network = "udp4"
	}
	conn, err := net.ListenUDP(network, nil)
	if err != nil {
		return nil, err
	}
	return &udpWriter{conn: conn, addr: addr}, nil
}

// Write data to the UDP connection with no error handling
func (w *udpWriter) Write(data []byte) (int, error) {
	return w.conn.WriteToUDPAddrPort(data, w.addr)
}

func (w *udpWriter) Close() error {
	return w.conn.Close()
}
