package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/geonote/chat-service/internal/domain"
	"github.com/geonote/chat-service/internal/postgres"
	"github.com/geonote/chat-service/internal/service"
	httpmw "github.com/geonote/chat-service/internal/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	roomSvc *service.RoomService
	chatSvc *service.ChatService
}

func NewHandler(room *service.RoomService, chat *service.ChatService) *Handler {
	return &Handler{
		roomSvc: room,
		chatSvc: chat,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// GET /rooms?limit=&cursor=
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	u := httpmw.UserFromCtx(r.Context())
	if u == nil {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "invalid credential"})
		return
	}

	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}
	cursor := r.URL.Query().Get("cursor")

	rooms, next, err := h.roomSvc.ListForUser(r.Context(), u.ID, limit, cursor)
	if err != nil {
		if errors.Is(err, postgres.ErrInvalidCursor) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid_cursor"})
			return
		}
		slog.Error("handler.ListRooms:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		return
	}

	resp := RoomsListResponse{Items: make([]RoomItem, 0, len(rooms)), NextCursor: next}
	for _, rm := range rooms {
		resp.Items = append(resp.Items, RoomItem{
			ID:            rm.ID,
			ParticipantA:  strconv.FormatInt(rm.ParticipantA, 10),
			ParticipantB:  strconv.FormatInt(rm.ParticipantB, 10),
			LastMessage:   rm.LastMessage,
			LastMessageAt: rm.LastMessageAt,
			CreatedAt:     rm.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// GET /rooms/{id}/chat?after=&limit=
func (h *Handler) GetChatHistory(w http.ResponseWriter, r *http.Request) {
	u := httpmw.UserFromCtx(r.Context())
	if u == nil {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "invalid credential"})
		return
	}

	roomID := chi.URLParam(r, "id")
	after := r.URL.Query().Get("after")
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}

	items, next, err := h.chatSvc.History(r.Context(), roomID, u.ID, after, limit)
	if err != nil {
		switch {
		// one message for both, so room existence cannot be probed
		case errors.Is(err, domain.ErrRoomNotFound), errors.Is(err, domain.ErrNotParticipant):
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "room not found or access denied"})
			return
		case errors.Is(err, postgres.ErrInvalidCursor):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid_cursor"})
			return
		default:
			slog.Error("handler.GetChatHistory:", slog.Any("err", err))
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
			return
		}
	}

	resp := ChatHistoryResponse{Items: make([]ChatMessageItem, 0, len(items)), NextCursor: next}
	for _, m := range items {
		resp.Items = append(resp.Items, ChatMessageItem{
			ID:        m.ID,
			RoomID:    m.RoomID,
			UserID:    strconv.FormatInt(m.SenderID, 10),
			Text:      m.Body,
			IsRead:    m.IsRead,
			CreatedAt: m.CreatedAt.Truncate(time.Millisecond),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
