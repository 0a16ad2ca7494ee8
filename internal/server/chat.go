package server

import (
	"context"
	"net/http"
	"strings"

	"FitPlanner/internal/geminiservice"
	"FitPlanner/internal/utility"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const rateLimitMessage = "Too many messages, please slow down."

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply   string               `json:"reply"`
	History []geminiservice.Turn `json:"history,omitempty"`
	Error   string               `json:"error,omitempty"`
}

type HistoryResponse struct {
	History []geminiservice.Turn `json:"history"`
}

// relay appends the user message, asks Gemini for a reply and appends it.
// The reply is always displayable; a non-empty second value describes what
// went wrong upstream.
func (s *Server) relay(ctx context.Context, logger *zerolog.Logger, conv *geminiservice.Conversation, message string) (string, string) {
	conv.Append(geminiservice.RoleUser, message)

	reply, err := s.gemini.SendChat(ctx, logger, conv)
	conv.Append(geminiservice.RoleModel, reply)

	if err != nil {
		return reply, err.Error()
	}
	return reply, ""
}

func (s *Server) chatHandler(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Message is required"})
	}

	conv, err := s.sessions.Conversation(c.Response(), c.Request())
	if err != nil {
		utility.GetLogger(c).Error().Err(err).Msg("Failed to load chat session")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load chat session"})
	}

	reply, errMsg := s.relay(c.Request().Context(), utility.GetLogger(c), conv, message)

	return c.JSON(http.StatusOK, ChatResponse{
		Reply:   reply,
		History: conv.Turns(),
		Error:   errMsg,
	})
}

func (s *Server) chatHistoryHandler(c echo.Context) error {
	conv, err := s.sessions.Conversation(c.Response(), c.Request())
	if err != nil {
		utility.GetLogger(c).Error().Err(err).Msg("Failed to load chat session")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load chat session"})
	}

	turns := conv.Turns()
	if turns == nil {
		turns = []geminiservice.Turn{}
	}
	return c.JSON(http.StatusOK, HistoryResponse{History: turns})
}

func (s *Server) resetChatHandler(c echo.Context) error {
	if _, err := s.sessions.Reset(c.Response(), c.Request()); err != nil {
		utility.GetLogger(c).Error().Err(err).Msg("Failed to reset chat session")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to reset chat session"})
	}
	return c.NoContent(http.StatusNoContent)
}

// chatSocketHandler serves the chat over a websocket. Every text frame is a
// user message and every reply goes back as a ChatResponse frame without
// the history.
func (s *Server) chatSocketHandler(c echo.Context) error {
	logger := utility.GetLogger(c)

	// The session cookie has to be issued on the upgrade response, since
	// headers written before Upgrade are not sent.
	cookies := http.Header{}
	conv, err := s.sessions.Conversation(headerWriter{ResponseWriter: c.Response(), header: cookies}, c.Request())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load chat session")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load chat session"})
	}

	ws, err := utility.Upgrader.Upgrade(c.Response(), c.Request(), cookies)
	if err != nil {
		return err
	}
	defer ws.Close()

	connID := uuid.NewString()
	utility.RegisterClient(connID, ws)
	defer utility.UnregisterClient(connID)

	// The route limiter only sees the upgrade request, so each socket gets
	// its own budget for the messages it carries.
	limiter := rate.NewLimiter(rate.Limit(s.cfg.ChatRateLimit), max(1, int(s.cfg.ChatRateLimit)))

	ctx := c.Request().Context()
	for {
		msgType, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn().Err(err).Str("conn_id", connID).Msg("Chat socket closed unexpectedly")
			}
			break
		}
		if msgType != websocket.TextMessage {
			continue
		}

		message := strings.TrimSpace(string(data))
		if message == "" {
			continue
		}

		if !limiter.Allow() {
			if err := ws.WriteJSON(ChatResponse{Error: rateLimitMessage}); err != nil {
				break
			}
			continue
		}

		reply, errMsg := s.relay(ctx, logger, conv, message)
		if err := ws.WriteJSON(ChatResponse{Reply: reply, Error: errMsg}); err != nil {
			logger.Warn().Err(err).Str("conn_id", connID).Msg("Failed to write chat reply")
			break
		}
	}
	return nil
}

// headerWriter collects headers into its own map so they can be handed to
// the websocket upgrader.
type headerWriter struct {
	http.ResponseWriter
	header http.Header
}

func (w headerWriter) Header() http.Header { return w.header }
