package followservice

import (
	"log/slog"

	httpadapter "plume/contexts/community/follow-service/adapters/http"
	"plume/contexts/community/follow-service/adapters/memory"
	"plume/contexts/community/follow-service/application/commands"
	"plume/contexts/community/follow-service/application/queries"
	"plume/contexts/community/follow-service/application/workers"
	"plume/contexts/community/follow-service/domain/entities"
	"plume/contexts/community/follow-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Relay   workers.OutboxRelay
	Store   *memory.Store
}

type Dependencies struct {
	Follows      ports.FollowRepository
	People       ports.PersonDirectory
	Outbox       ports.OutboxRepository
	Publisher    ports.FollowEventPublisher
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	EnableFanout bool
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	toggle := commands.ToggleFollowUseCase{
		Follows:      deps.Follows,
		People:       deps.People,
		Clock:        deps.Clock,
		IDGenerator:  deps.IDGen,
		EnableFanout: deps.EnableFanout,
		Logger:       deps.Logger,
	}
	people := queries.PeopleUseCase{
		People:  deps.People,
		Follows: deps.Follows,
	}
	return Module{
		Handler: httpadapter.Handler{
			Toggle: toggle,
			People: people,
			Logger: deps.Logger,
		},
		Relay: workers.OutboxRelay{
			Outbox:    deps.Outbox,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			Logger:    deps.Logger,
		},
	}
}

func NewInMemoryModule(people []entities.Person, publisher ports.FollowEventPublisher, logger *slog.Logger) Module {
	store := memory.NewStore(people)
	module := NewModule(Dependencies{
		Follows:      store,
		People:       store,
		Outbox:       store,
		Publisher:    publisher,
		Clock:        store,
		IDGen:        store,
		EnableFanout: publisher != nil,
		Logger:       logger,
	})
	module.Store = store
	return module
}
