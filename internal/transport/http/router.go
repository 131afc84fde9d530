package http

import (
	"log/slog"
	"net/http"
	"time"

	httpmw "github.com/geonote/chat-service/internal/transport/http/middleware"
	"github.com/geonote/chat-service/internal/transport/ws"
	"github.com/geonote/chat-service/pkg/logger"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler, identity httpmw.Identity, wsServer *ws.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewareChi.RequestID)
	r.Use(middlewareChi.RealIP)
	r.Use(requestLog)
	r.Use(middlewareChi.Recoverer)

	// WS endpoint; authentication happens in-band after the upgrade
	r.Get("/ws", wsServer.HandleWS)

	// read-only REST surface, bearer token required
	r.Group(func(pr chi.Router) {
		pr.Use(httpmw.AuthMiddleware(identity))
		pr.Use(middlewareChi.Timeout(30 * time.Second))

		pr.Route("/rooms", func(rm chi.Router) {
			rm.Get("/", h.ListRooms)
			rm.Get("/{id}/chat", h.GetChatHistory)
		})
	})

	// health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}

func requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		attrs := append(logger.AttrsFromCtx(r.Context()),
			slog.String("request_id", middlewareChi.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("took", time.Since(start)),
		)
		slog.LogAttrs(r.Context(), slog.LevelInfo, "http request", attrs...)
	})
}
