package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/zstd"
)

type zstdResponseWriter struct {
	gin.ResponseWriter
	encoder *zstd.Encoder
}

func (w *zstdResponseWriter) Write(b []byte) (int, error) {
	return w.encoder.Write(b)
}

func (w *zstdResponseWriter) WriteString(s string) (int, error) {
	return w.encoder.Write([]byte(s))
}

// Zstd compresses responses for clients that accept zstd.
func Zstd() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Accept-Encoding"), "zstd") {
			c.Next()
			return
		}

		encoder, err := zstd.NewWriter(c.Writer)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer encoder.Close()

		c.Header("Content-Encoding", "zstd")
		c.Header("Vary", "Accept-Encoding")
		c.Writer = &zstdResponseWriter{ResponseWriter: c.Writer, encoder: encoder}
		c.Next()
	}
}
