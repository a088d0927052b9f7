package pollengine

import (
	"log/slog"
	"time"

	httpadapter "plume/contexts/publishing/poll-engine/adapters/http"
	"plume/contexts/publishing/poll-engine/adapters/memory"
	"plume/contexts/publishing/poll-engine/application/commands"
	"plume/contexts/publishing/poll-engine/application/queries"
	"plume/contexts/publishing/poll-engine/domain/entities"
	"plume/contexts/publishing/poll-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Polls    ports.BallotRepository
	Cache    ports.TallyCache
	Clock    ports.Clock
	CacheTTL time.Duration
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	voteUseCase := commands.VoteUseCase{
		Polls:  deps.Polls,
		Cache:  deps.Cache,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	tallyUseCase := queries.TallyUseCase{
		Polls:    deps.Polls,
		Cache:    deps.Cache,
		Clock:    deps.Clock,
		CacheTTL: deps.CacheTTL,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Votes:   voteUseCase,
			Tallies: tallyUseCase,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Poll, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Polls:    store,
		Cache:    store,
		Clock:    store,
		CacheTTL: 15 * time.Second,
		Logger:   logger,
	})
	module.Store = store
	return module
}
