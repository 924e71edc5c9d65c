package notification

import (
	"io"
	"log/slog"

	"github.com/apartment-life/backend/internal/handler"
	"github.com/apartment-life/backend/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(logger *slog.Logger, broker broker) Handler {
	return Handler{logger, broker}
}

type Handler struct {
	logger *slog.Logger
	broker broker
}

type broker interface {
	Subscribe(user model.User)
	Unsubscribe(id uint)
	Receive(id uint) (Notification, bool)
}

func (h Handler) Subscribe(c *gin.Context) {
	// swagger:route GET /notifications streamNotifications
	//
	// Stream notifications
	//
	// Stream signup activity as server-sent events. Only administrators can
	// subscribe.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Stream
	//   401: Error
	//   403: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.broker.Subscribe(*user)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("Transfer-Encoding", "chunked")

	defer func() {
		h.broker.Unsubscribe(user.ID)
		h.logger.Info("Closing notification stream", "user", user.ID)
	}()

	go func() {
		<-c.Done()
		h.broker.Unsubscribe(user.ID)
	}()

	c.Stream(func(w io.Writer) bool {
		if notification, ok := h.broker.Receive(user.ID); ok {
			c.SSEvent(notification.Type, notification.Message)
			return true
		}
		return false
	})
}
