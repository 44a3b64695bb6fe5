package platter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/andybalholm/brotli"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
)

// Version is reported in the User-Agent of every request the dashboard sends.
const Version = "0.3.0"

// RequestIDHeader carries a per-request identifier so remote logs can be correlated with ours.
const RequestIDHeader = "X-Request-ID"

// ErrDecodeBody is returned when a compressed response body cannot be decoded.
var ErrDecodeBody = errors.New("decoding response body")

// platterRoundTripper stamps outgoing requests and decodes compressed responses.
// Everything else is delegated to the base RoundTripper.
type platterRoundTripper struct {
	userAgent string
	base      http.RoundTripper
}

// NewTransport wraps base (http.DefaultTransport when nil) with the dashboard's request
// stamping and response decoding.
// Because Accept-Encoding is set explicitly, net/http no longer decompresses gzip on its own;
// both gzip and br are handled here.
func NewTransport(base http.RoundTripper, userAgent string) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	if userAgent == "" {
		userAgent = "platter/" + Version
	}
	return &platterRoundTripper{
		userAgent: userAgent,
		base:      base,
	}
}

// RoundTrip satisfies http.RoundTripper.
// The request is cloned before headers are added, as required by the RoundTripper contract.
func (p *platterRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())

	if out.Header.Get("User-Agent") == "" {
		out.Header.Set("User-Agent", p.userAgent)
	}
	if out.Header.Get(RequestIDHeader) == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("generating request id: %w", err)
		}
		out.Header.Set(RequestIDHeader, id.String())
	}
	if out.Header.Get("Accept") == "" {
		out.Header.Set("Accept", "application/json")
	}
	out.Header.Set("Accept-Encoding", "br, gzip")

	res, err := p.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if err := decompressResponse(res); err != nil {
		res.Body.Close()
		return nil, err
	}
	return res, nil
}

// decompressResponse replaces res.Body with the decoded data for gzip and br encodings.
// It removes the Content-Encoding header and updates Content-Length to the new length.
func decompressResponse(res *http.Response) error {
	if res.Body == nil || res.Body == http.NoBody {
		return nil
	}

	var reader io.Reader
	switch res.Header.Get("Content-Encoding") {
	case "gzip":
		gzipReader, err := gzip.NewReader(res.Body)
		if err != nil {
			if errors.Is(err, io.EOF) {
				// empty body advertised as gzip
				return nil
			}
			return fmt.Errorf("%w : creating gzip reader: %w", ErrDecodeBody, err)
		}
		defer gzipReader.Close()
		reader = gzipReader
	case "br":
		reader = brotli.NewReader(res.Body)
	default:
		return nil
	}

	decompressedBody, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("%w : %w", ErrDecodeBody, err)
	}
	res.Body.Close()

	res.Body = io.NopCloser(bytes.NewReader(decompressedBody))
	res.ContentLength = int64(len(decompressedBody))
	res.Header.Set("Content-Length", strconv.Itoa(len(decompressedBody)))
	res.Header.Del("Content-Encoding")
	res.Uncompressed = true
	return nil
}
