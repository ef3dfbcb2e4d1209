package httpserver

import (
	"log/slog"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/NotJorge/tienda-informatica/internal/auth"
	"github.com/NotJorge/tienda-informatica/internal/domain"
	"github.com/NotJorge/tienda-informatica/internal/notify"
	apperrors "github.com/NotJorge/tienda-informatica/internal/platform/errors"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// registerNotificationRoutes wires one websocket endpoint per entity channel.
func (s *Server) registerNotificationRoutes() {
	s.echo.GET("/ws/product", s.notificationHandler(domain.ChannelProduct))
	s.echo.GET("/ws/category", s.notificationHandler(domain.ChannelCategory))
	s.echo.GET("/ws/suppliers", s.notificationHandler(domain.ChannelSupplier))
	s.echo.GET("/ws/employee", s.notificationHandler(domain.ChannelEmployee))
	s.echo.GET("/ws/clients", s.notificationHandler(domain.ChannelClient))
}

func (s *Server) notificationHandler(entity string) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := s.wsClaims(c)
		if err != nil {
			return err
		}
		if !claims.HasRole(readerRole) {
			return apperrors.ForbiddenError("insufficient permissions")
		}

		channel, ok := s.notify.Channel(entity)
		if !ok {
			return apperrors.InternalError("unknown notification channel", nil).WithField("channel", entity)
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			// Upgrade already wrote its own error response.
			slog.Warn("Websocket upgrade failed", "channel", entity, "error", err)
			return nil
		}

		if err := channel.Register(conn); err != nil {
			slog.Warn("Websocket register rejected", "channel", entity, "error", err)
			return nil
		}
		slog.Info("Websocket client connected", "channel", entity, "username", claims.Subject)

		go s.drainUntilClose(channel, conn)
		return nil
	}
}

// drainUntilClose reads and discards inbound frames. The channel is push-only;
// the read loop exists to notice disconnects and keep pong handling alive.
func (s *Server) drainUntilClose(channel *notify.Channel, conn *websocket.Conn) {
	defer channel.Unregister(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// wsClaims accepts the token from the Authorization header or, because
// browser websocket clients cannot set headers, from a token query parameter.
func (s *Server) wsClaims(c echo.Context) (*auth.Claims, error) {
	token := c.QueryParam("token")
	if token == "" {
		var err error
		token, err = auth.ExtractBearer(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return nil, err
		}
	}
	return s.tokens.Validate(token)
}
