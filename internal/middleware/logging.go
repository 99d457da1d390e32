// Package middleware 存放 chi 路由使用的中间件。
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/sharma-alok1/RailMate/backend/pkg/log"
)

// RequestLogger 记录每个请求的方法、路径、状态码和耗时。
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		fields := []any{
			"statusCode", status,
			"latency", time.Since(startTime).String(),
			"clientIP", r.RemoteAddr,
			"method", r.Method,
			"path", r.URL.Path,
			"bytes", ww.BytesWritten(),
		}
		if reqID := chimw.GetReqID(r.Context()); reqID != "" {
			fields = append(fields, "requestId", reqID)
		}

		if status >= http.StatusInternalServerError {
			log.Warnw("HTTP Request Log", fields...)
			return
		}
		log.Infow("HTTP Request Log", fields...)
	})
}
