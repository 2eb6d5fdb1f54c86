package httpapi

import (
	"errors"
	"io"
	"net/http"

	"flock/internal/adapters/httpapi/middleware"
	notificationapp "flock/internal/core/notification/service"
	notificationPort "flock/internal/ports/notification"
	"flock/internal/ports/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type NotificationController struct {
	nc     NotificationUseCase
	events realtime.Subscriber
	logger *zap.Logger
}

func NewNotificationController(nc NotificationUseCase, events realtime.Subscriber, logger *zap.Logger) *NotificationController {
	return &NotificationController{nc: nc, events: events, logger: logger}
}

func (ctl *NotificationController) ListNotifications(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	page, err := ctl.nc.ListNotifications(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// MarkRead accepts {"notificationIds": [...]}. No body, no field, or an empty list marks every
// unread notification.
func (ctl *NotificationController) MarkRead(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req notificationPort.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, bindingMessage(err))
		return
	}
	sel, err := notificationapp.SelectionFromIDs(req.NotificationIDs)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := ctl.nc.MarkRead(c.Request.Context(), userID, sel); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CountUnread never fails; anonymous callers get 0.
func (ctl *NotificationController) CountUnread(c *gin.Context) {
	var userID *uuid.UUID
	if id, ok := middleware.CurrentUser(c); ok {
		userID = &id
	}
	c.JSON(http.StatusOK, notificationPort.UnreadCountDTO{Count: ctl.nc.CountUnread(c.Request.Context(), userID)})
}

// Stream relays the user's channel as server-sent events until the client goes away.
func (ctl *NotificationController) Stream(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	events, err := ctl.events.Subscribe(c.Request.Context(), realtime.UserChannel(userID))
	if err != nil {
		writeError(c, err)
		return
	}
	ctl.logger.Debug("stream opened", zap.String("userID", userID.String()))

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Stream(func(w io.Writer) bool {
		ev, ok := <-events
		if !ok {
			return false
		}
		c.SSEvent(ev.Name, ev.Payload)
		return true
	})
}
