package notificationservice

import (
	"log/slog"

	httpadapter "plume/contexts/community/notification-service/adapters/http"
	"plume/contexts/community/notification-service/adapters/memory"
	"plume/contexts/community/notification-service/application/commands"
	"plume/contexts/community/notification-service/application/queries"
	"plume/contexts/community/notification-service/application/workers"
	"plume/contexts/community/notification-service/ports"
)

type Module struct {
	Handler  httpadapter.Handler
	Consumer workers.FollowConsumer
	Store    *memory.Store
}

type Dependencies struct {
	Notifications ports.NotificationRepository
	Clock         ports.Clock
	IDGen         ports.IDGenerator
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	inbox := queries.InboxUseCase{
		Notifications: deps.Notifications,
	}
	markAllRead := commands.MarkAllReadUseCase{
		Notifications: deps.Notifications,
		Clock:         deps.Clock,
		Logger:        deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Inbox:       inbox,
			MarkAllRead: markAllRead,
			Logger:      deps.Logger,
		},
		Consumer: workers.FollowConsumer{
			Notifications: deps.Notifications,
			Clock:         deps.Clock,
			IDGenerator:   deps.IDGen,
			Logger:        deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Notifications: store,
		Clock:         store,
		IDGen:         store,
		Logger:        logger,
	})
	module.Store = store
	return module
}
