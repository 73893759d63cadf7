package middleware

import (
	"io"
	"strings"

	"pattamap/internal/core"
	"pattamap/internal/telemetry"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
)

// Compress 依 Accept-Encoding 壓縮回應，br 優先於 gzip。
// 已壓縮或串流中的回應不再處理。
type Compress struct {
	trace *telemetry.Trace
}

func NewCompress(trace *telemetry.Trace) *Compress {
	return &Compress{trace: trace}
}

func (m *Compress) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, _, end := m.trace.WithSpan(m.trace.GetTraceContext(c), string(core.SpanCompressMiddleware))

		acceptEncoding := c.GetHeader("Accept-Encoding")
		switch {
		case strings.Contains(acceptEncoding, "br"):
			writer := brotli.NewWriterLevel(c.Writer, brotli.DefaultCompression)
			end(nil)
			m.wrap(c, writer, "br")
		case strings.Contains(acceptEncoding, "gzip"):
			writer := gzip.NewWriter(c.Writer)
			end(nil)
			m.wrap(c, writer, "gzip")
		default:
			end(nil)
			c.Next()
		}
	}
}

type flushCloser interface {
	io.Writer
	Close() error
}

func (m *Compress) wrap(c *gin.Context, writer flushCloser, encoding string) {
	original := c.Writer
	c.Header("Content-Encoding", encoding)
	c.Header("Vary", "Accept-Encoding")
	c.Writer = &compressWriter{ResponseWriter: original, compressor: writer}
	defer func() {
		_ = writer.Close()
		c.Writer = original
	}()
	c.Next()
}

type compressWriter struct {
	gin.ResponseWriter
	compressor io.Writer
}

func (w *compressWriter) Write(data []byte) (int, error) {
	// 長度未知時 Content-Length 不可信，直接移除
	w.Header().Del("Content-Length")
	return w.compressor.Write(data)
}

func (w *compressWriter) WriteString(data string) (int, error) {
	return w.Write([]byte(data))
}
