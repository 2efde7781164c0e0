package fetch

import (
	"context"
	"net"

	tls2 "github.com/refraction-networking/utls"
)

// tlsHandshakeError marks handshake failures so the error classifier can
// report them as certificate problems rather than generic transport failures.
type tlsHandshakeError struct {
	err error
}

func (e *tlsHandshakeError) Error() string { return "tls handshake: " + e.err.Error() }
func (e *tlsHandshakeError) Unwrap() error { return e.err }

// dialTLSChrome establishes a TLS connection presenting a Chrome fingerprint
// via utls, so sites that fingerprint Go's default ClientHello still serve
// their normal markup.
func dialTLSChrome(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{}
	rawConn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	host, _, _ := net.SplitHostPort(addr)
	tlsConn := tls2.UClient(rawConn, &tls2.Config{
		ServerName: host,
	}, tls2.HelloChrome_Auto)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		rawConn.Close()
		return nil, &tlsHandshakeError{err: err}
	}
	return tlsConn, nil
}
