// Package dependency provides dependency injection for the application.
package dependency

import (
	"gorm.io/gorm"

	"github.com/trackd-analytics/byod/config"
	"github.com/trackd-analytics/byod/internal/application/adapter"
	"github.com/trackd-analytics/byod/internal/application/usecase/ledger"
	"github.com/trackd-analytics/byod/internal/application/usecase/normalize"
	"github.com/trackd-analytics/byod/internal/application/usecase/schema"
	"github.com/trackd-analytics/byod/internal/infra/server/router"
	"github.com/trackd-analytics/byod/internal/integration/csvio"
	"github.com/trackd-analytics/byod/internal/integration/entrypoint/controller"
	"github.com/trackd-analytics/byod/internal/integration/entrypoint/middleware"
	"github.com/trackd-analytics/byod/internal/integration/persistence"
	"github.com/trackd-analytics/byod/internal/integration/project"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies
// wired. db may be nil when no workbook is configured; persistence is then
// disabled and everything else still works.
func NewInjector(cfg *config.Config, db *gorm.DB, workbookHealthChecker func() bool) *Injector {
	// Create the table store and the adapter registry
	store := csvio.NewStore()
	registry := normalize.NewRegistry()
	loader := project.NewLoader(registry.Names())

	// Create repositories (optional)
	var ledgerRepo adapter.LedgerRepository
	if db != nil {
		ledgerRepo = persistence.NewLedgerRepository(db)
	}

	// Create use cases
	validateUseCase := schema.NewValidateDatasetUseCase(store)
	normalizeUseCase := normalize.NewNormalizeProjectUseCase(store, loader, registry)
	prepareTidyUseCase := ledger.NewPrepareTidyUseCase()
	monthlySummaryUseCase := ledger.NewMonthlySummaryUseCase()
	analyzeUseCase := ledger.NewAnalyzeUseCase(prepareTidyUseCase, monthlySummaryUseCase, ledgerRepo)

	// Create controllers
	healthController := controller.NewHealthController(workbookHealthChecker)
	projectController := controller.NewProjectController(
		store,
		validateUseCase,
		normalizeUseCase,
		analyzeUseCase,
	)

	// Rate limit the pipeline endpoints; every call walks the project
	// directory on disk
	rateLimiter := middleware.NewRateLimiter()

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: router.NewRouter(healthController, projectController, rateLimiter),
	}
}
