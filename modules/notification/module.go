package notification

import (
	"studio-api/core/constants"
	"studio-api/core/database"
	"studio-api/core/middleware"
	"studio-api/core/queue"
	"studio-api/modules/notification/controller"
	"studio-api/modules/notification/repository"
	"studio-api/modules/notification/router"
	"studio-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the notification module. Delivery runs through the
// task queue when a worker is present; q and w may be nil, in which
// case notifications are persisted synchronously.
func Init(e *echo.Echo, db database.IDatabase, q *queue.Client, w *queue.Worker, mw *middleware.Middleware) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo, q)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Setup(e, mw)

	if w != nil {
		w.Handle(constants.TaskNotificationDeliver, svc.HandleDeliverTask)
	}

	return svc
}
