package middlewares

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/net/ghttp"
)

const (
	// 小于该长度的响应不压缩
	brotliMinSize = 1024
	// 接口返回 JSON 为主，级别 5 兼顾速度和压缩率
	brotliLevel = 5
)

// BrotliMiddleware 在客户端支持时用 brotli 压缩响应体。
// WebSocket 升级请求会被跳过。
func BrotliMiddleware(r *ghttp.Request) {
	if !acceptsBrotli(r) || isUpgrade(r) {
		r.Middleware.Next()
		return
	}

	r.Middleware.Next()

	header := r.Response.Header()
	if r.Response.Status != http.StatusOK ||
		r.Response.BufferLength() < brotliMinSize ||
		header.Get("Content-Encoding") != "" {
		return
	}

	var compressed bytes.Buffer
	writer := brotli.NewWriterLevel(&compressed, brotliLevel)
	if _, err := writer.Write(r.Response.Buffer()); err != nil {
		g.Log().Errorf(r.Context(), "Brotli 写入失败: %v", err)
		return
	}
	if err := writer.Close(); err != nil {
		g.Log().Errorf(r.Context(), "Brotli 写入器关闭失败: %v", err)
		return
	}

	header.Set("Content-Encoding", "br")
	header.Add("Vary", "Accept-Encoding")
	header.Del("Content-Length")
	r.Response.ClearBuffer()
	r.Response.Write(compressed.Bytes())
}

func acceptsBrotli(r *ghttp.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		name, _, _ := strings.Cut(strings.TrimSpace(enc), ";")
		if strings.EqualFold(name, "br") {
			return true
		}
	}
	return false
}

func isUpgrade(r *ghttp.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}
