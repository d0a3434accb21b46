package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/campushq/campus-backend/internal/config"
	"github.com/campushq/campus-backend/internal/middleware"
	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/service"
	ws "github.com/campushq/campus-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams parent notifications over WebSocket, backed by the
// per-parent Redis PubSub channel the notify worker publishes to.
type WSHandler struct {
	rdb           *redis.Client
	notifyService *service.NotificationService
	log           zerolog.Logger
	upgrader      websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, notifyService *service.NotificationService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:           rdb,
		notifyService: notifyService,
		log:           log.With().Str("component", "ws_handler").Logger(),
		upgrader:      buildUpgrader(allowedOrigins),
	}
}

// NotificationStream godoc
// WS /ws/v1/portal/notifications?token=...
// Upgrades to WebSocket and forwards the parent's notifications as they
// are delivered. The client can ping and acknowledge reads in-stream.
func (h *WSHandler) NotificationStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if claims.PortalRole != model.PortalRoleParent {
		c.JSON(http.StatusForbidden, gin.H{"error": "parent accounts only"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()
	sc := ws.NewSafeConn(conn)

	parentID := claims.UserID
	wsLog := h.log.With().Int("parent_id", parentID).Logger()

	// Subscription outlives the request context; closed on disconnect.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := h.rdb.Subscribe(ctx, config.CacheKey.ParentNotifyChannel(parentID))
	defer sub.Close()

	wsLog.Info().Msg("Parent connected")

	go h.forwardNotifications(ctx, sc, sub, wsLog)

	for {
		var envelope ws.RequestEnvelope
		raw, err := ws.ReadRaw(conn)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			sc.WriteError("malformed message")
			continue
		}

		switch envelope.Action {
		case ws.ActionPing:
			sc.WriteTyped(ws.PongResponse{Event: ws.EventPong})
		case ws.ActionAck:
			h.handleAck(sc, parentID, raw)
		default:
			wsLog.Warn().Str("action", string(envelope.Action)).Msg("Unknown action")
			sc.WriteError("unknown action: " + string(envelope.Action))
		}
	}
}

// forwardNotifications relays PubSub messages to the socket until the
// connection goes away.
func (h *WSHandler) forwardNotifications(ctx context.Context, sc *ws.SafeConn, sub *redis.PubSub, wsLog zerolog.Logger) {
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var n model.Notification
			if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
				wsLog.Warn().Err(err).Msg("Bad notification payload")
				continue
			}
			if err := sc.WriteTyped(ws.NotificationEvent{Event: ws.EventNotification, Notification: n}); err != nil {
				wsLog.Debug().Err(err).Msg("Forward failed, dropping connection")
				return
			}
		}
	}
}

// handleAck marks one notification read without leaving the stream.
func (h *WSHandler) handleAck(sc *ws.SafeConn, parentID int, raw []byte) {
	var req ws.AckRequest
	if err := json.Unmarshal(raw, &req); err != nil || req.NotificationID < 1 {
		sc.WriteError("malformed ack")
		return
	}

	marked, err := h.notifyService.MarkRead(context.Background(), parentID, req.NotificationID)
	if err != nil {
		sc.WriteError("ack failed")
		return
	}
	if !marked {
		sc.WriteError("unknown notification")
		return
	}

	sc.WriteTyped(ws.AckedResponse{Event: ws.EventAcked, NotificationID: req.NotificationID})
}
