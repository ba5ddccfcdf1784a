package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EthanYidong/rehost/pkg/errors"
)

func TestClientFetchText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/readme.md":
			w.Header().Set("Content-Type", "text/markdown")
			_, _ = w.Write([]byte("# Hello"))
		case "/latin1.txt":
			w.Header().Set("Content-Type", "text/plain; charset=ISO-8859-1")
			_, _ = w.Write([]byte{'c', 'a', 'f', 0xe9})
		case "/binary":
			w.Header().Set("Content-Type", "application/octet-stream")
			_, _ = w.Write([]byte{0xff, 0xfe, 0xfd})
		case "/headers":
			_, _ = w.Write([]byte(r.Header.Get("User-Agent") + "|" + r.Header.Get("X-Token")))
		case "/slow":
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte("late"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := New()
	ctx := context.Background()

	t.Run("utf-8 body", func(t *testing.T) {
		text, err := client.FetchText(ctx, server.URL+"/readme.md")
		require.NoError(t, err)
		assert.Equal(t, "# Hello", text)
	})

	t.Run("declared charset is decoded", func(t *testing.T) {
		text, err := client.FetchText(ctx, server.URL+"/latin1.txt")
		require.NoError(t, err)
		assert.Equal(t, "café", text)
	})

	t.Run("invalid utf-8 body", func(t *testing.T) {
		_, err := client.FetchText(ctx, server.URL+"/binary")
		require.Error(t, err)
		assert.True(t, errors.IsFetchError(err))
		assert.ErrorIs(t, err, ErrInvalidText)
	})

	t.Run("non-2xx status", func(t *testing.T) {
		_, err := client.FetchText(ctx, server.URL+"/missing")
		require.Error(t, err)
		var fetchErr *errors.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	})

	t.Run("headers and user agent", func(t *testing.T) {
		text, err := New(WithUserAgent("rehost-test")).FetchText(ctx, server.URL+"/headers", Headers{"X-Token": "abc"})
		require.NoError(t, err)
		assert.Equal(t, "rehost-test|abc", text)
	})

	t.Run("timeout", func(t *testing.T) {
		short := New(WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}))
		_, err := short.FetchText(ctx, server.URL+"/slow")
		require.Error(t, err)
		assert.True(t, errors.IsFetchError(err))
	})

	t.Run("connection refused", func(t *testing.T) {
		_, err := client.FetchText(ctx, "http://127.0.0.1:1/x")
		require.Error(t, err)
		assert.True(t, errors.IsFetchError(err))
	})
}

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name        string
		body        []byte
		contentType string
		want        string
		wantErr     bool
	}{
		{"no content type", []byte("plain"), "", "plain", false},
		{"explicit utf-8", []byte("日本"), "text/plain; charset=utf-8", "日本", false},
		{"windows-1252", []byte{0x93, 'q', 0x94}, "text/html; charset=windows-1252", "“q”", false},
		{"unknown charset", []byte("x"), "text/plain; charset=klingon", "", true},
		{"malformed media type falls back to utf-8", []byte("ok"), ";;;", "ok", false},
		{"invalid utf-8", []byte{0xc3, 0x28}, "text/plain", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeText(tt.body, tt.contentType)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidText)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
