package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestCaptureWriterWithinLimit(t *testing.T) {
    rec := httptest.NewRecorder()
    cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 64}

    _, err := cw.Write([]byte("restaurant listing"))
    require.NoError(t, err)

    assert.Equal(t, "restaurant listing", rec.Body.String())
    assert.Equal(t, "restaurant listing", cw.buf.String())
    assert.False(t, cw.overflowed())
    assert.True(t, cacheable(cw))
}

func TestCaptureWriterOversizedResponseNotCacheable(t *testing.T) {
    rec := httptest.NewRecorder()
    cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}

    n, err := cw.Write([]byte("0123456789"))
    require.NoError(t, err)

    // The client still gets the whole body.
    assert.Equal(t, 10, n)
    assert.Equal(t, "0123456789", rec.Body.String())

    // A response past the limit must be flagged so the middleware never
    // stores a truncated body for replay as a complete 200.
    assert.True(t, cw.overflowed())
    assert.False(t, cacheable(cw))
}

func TestCaptureWriterOverflowAcrossWrites(t *testing.T) {
    rec := httptest.NewRecorder()
    cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}

    _, _ = cw.Write([]byte("abc"))
    _, _ = cw.Write([]byte("def"))

    assert.Equal(t, "abcdef", rec.Body.String())
    assert.True(t, cw.overflowed())
    assert.False(t, cacheable(cw))
}

func TestCacheableRequiresOKStatus(t *testing.T) {
    rec := httptest.NewRecorder()
    cw := &captureWriter{ResponseWriter: rec, status: http.StatusNotFound, limit: 0}
    _, _ = cw.Write([]byte(`{"error":"restaurant not found"}`))
    assert.False(t, cacheable(cw))
}

func TestCaptureWriterUnlimited(t *testing.T) {
    rec := httptest.NewRecorder()
    cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 0}
    _, _ = cw.Write(make([]byte, 4096))
    assert.False(t, cw.overflowed())
    assert.True(t, cacheable(cw))
    assert.Equal(t, 4096, cw.buf.Len())
}

func TestPayloadRoundTripPreservesStatusAndHeaders(t *testing.T) {
    hdr := http.Header{"Content-Type": []string{"application/json"}}
    payload, err := encodePayload(http.StatusOK, hdr, []byte(`[{"id":1}]`))
    require.NoError(t, err)

    status, gotHdr, body, ok := decodePayload(payload)
    require.True(t, ok)
    assert.Equal(t, http.StatusOK, status)
    assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
    assert.Equal(t, `[{"id":1}]`, string(body))
}

func TestDecodePayloadRejectsShortInput(t *testing.T) {
    _, _, _, ok := decodePayload([]byte{1, 2, 3})
    assert.False(t, ok)
}
