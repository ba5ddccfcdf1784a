package transport

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/EthanYidong/rehost/pkg/errors"
)

// ErrInvalidText is returned when a body is not valid in its declared charset.
var ErrInvalidText = errors.New("body is not valid text")

// ReadText reads the response body and decodes it using the charset from
// its Content-Type header.
func ReadText(resp *http.Response) (string, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}
	return DecodeText(body, resp.Header.Get("Content-Type"))
}

// DecodeText converts body to a UTF-8 string. The charset parameter of
// contentType selects the decoder; UTF-8 is assumed when it is absent and
// must then be valid.
func DecodeText(body []byte, contentType string) (string, error) {
	charset := "utf-8"
	if contentType != "" {
		if _, params, err := mime.ParseMediaType(contentType); err == nil && params["charset"] != "" {
			charset = params["charset"]
		}
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", fmt.Errorf("%w: unsupported charset %q", ErrInvalidText, charset)
	}

	if name, _ := htmlindex.Name(enc); name == "utf-8" {
		if !utf8.Valid(body) {
			return "", fmt.Errorf("%w: invalid UTF-8", ErrInvalidText)
		}
		return string(body), nil
	}

	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidText, err)
	}
	return string(decoded), nil
}
