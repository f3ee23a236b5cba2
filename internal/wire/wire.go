// Package wire provides dependency injection for the tabdeck application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"database/sql"
	"io"
	"log"
	"os"
	"sync"

	cliadapter "github.com/example/tabdeck/internal/adapters/cli"
	"github.com/example/tabdeck/internal/adapters/diskv"
	"github.com/example/tabdeck/internal/adapters/layoutfile"
	"github.com/example/tabdeck/internal/adapters/slogsink"
	"github.com/example/tabdeck/internal/adapters/sqlite"
	"github.com/example/tabdeck/internal/app"
	"github.com/example/tabdeck/internal/config"
	"github.com/example/tabdeck/internal/db"
	"github.com/example/tabdeck/internal/ports/primary"
	"github.com/example/tabdeck/internal/ports/secondary"
)

var (
	cfg            *config.Config
	database       *sql.DB
	stores         layoutfile.Stores
	eventRepo      secondary.GestureEventRepository
	reorderer      *app.WorkspaceReorderer
	gestureService primary.GestureService
	layoutService  primary.LayoutService
	once           sync.Once
)

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// GestureService returns the singleton GestureService instance.
func GestureService() primary.GestureService {
	once.Do(initServices)
	return gestureService
}

// LayoutService returns the singleton LayoutService instance.
func LayoutService() primary.LayoutService {
	once.Do(initServices)
	return layoutService
}

// Stores returns the store ports used by layout import and export.
func Stores() layoutfile.Stores {
	once.Do(initServices)
	return stores
}

// GestureEvents returns the gesture audit log repository.
func GestureEvents() secondary.GestureEventRepository {
	once.Do(initServices)
	return eventRepo
}

// Shutdown runs pending workspace reorders and closes the database.
// It is a no-op when nothing was initialized.
func Shutdown(ctx context.Context) {
	if reorderer != nil {
		reorderer.Flush(ctx)
	}
	if database != nil {
		database.Close()
	}
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	database, err = db.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Secondary adapters
	tabRepo := sqlite.NewTabRepository(database)
	windowRepo := sqlite.NewWindowRepository(database)
	workspaceRepo := sqlite.NewWorkspaceRepository(database)
	eventRepo = sqlite.NewGestureEventRepository(database)
	viewState := diskv.Open(cfg.Selection.Dir)
	stores = layoutfile.Stores{Tabs: tabRepo, Windows: windowRepo, Workspaces: workspaceRepo}

	logger, err := slogsink.NewLogger(os.Stderr, cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		log.Fatalf("failed to configure logging: %v", err)
	}
	var sink secondary.EventSink = slogsink.New(logger)
	if cfg.Log.Audit {
		sink = slogsink.Multi{sink, sqlite.NewEventLog(eventRepo)}
	}

	// Application services
	reorderer = app.NewWorkspaceReorderer(workspaceRepo, sink, cfg.ReorderDebounce())
	executor := app.NewEffectExecutor(tabRepo, windowRepo, workspaceRepo, reorderer, sink)
	router := app.NewRouter(tabRepo, viewState, executor, sink)

	gestureService = app.NewGestureService(tabRepo, viewState, router, executor, sink,
		app.WithRecentlyMoved(cfg.RecentlyMoved()))
	layoutService = app.NewLayoutService(tabRepo, windowRepo, workspaceRepo, viewState, viewState)
}

// LayoutAdapter returns a new LayoutAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func LayoutAdapter() *cliadapter.LayoutAdapter {
	return LayoutAdapterWithOutput(os.Stdout)
}

// LayoutAdapterWithOutput returns a new LayoutAdapter writing to the given output.
func LayoutAdapterWithOutput(out io.Writer) *cliadapter.LayoutAdapter {
	once.Do(initServices)
	return cliadapter.NewLayoutAdapter(layoutService, out)
}

// GestureAdapter returns a new GestureAdapter writing to stdout.
func GestureAdapter() *cliadapter.GestureAdapter {
	return GestureAdapterWithOutput(os.Stdout)
}

// GestureAdapterWithOutput returns a new GestureAdapter writing to the given output.
func GestureAdapterWithOutput(out io.Writer) *cliadapter.GestureAdapter {
	once.Do(initServices)
	return cliadapter.NewGestureAdapter(gestureService, layoutService, out)
}
