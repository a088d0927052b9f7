package postservice

import (
	"log/slog"

	httpadapter "plume/contexts/publishing/post-service/adapters/http"
	"plume/contexts/publishing/post-service/adapters/memory"
	"plume/contexts/publishing/post-service/application/commands"
	"plume/contexts/publishing/post-service/application/queries"
	"plume/contexts/publishing/post-service/domain/entities"
	"plume/contexts/publishing/post-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Posts  ports.PostRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	postUseCase := commands.PostUseCase{
		Posts:  deps.Posts,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	feedUseCase := queries.FeedUseCase{
		Posts: deps.Posts,
	}
	return Module{
		Handler: httpadapter.Handler{
			Posts:  postUseCase,
			Feed:   feedUseCase,
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Post, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Posts:  store,
		Clock:  store,
		IDGen:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
