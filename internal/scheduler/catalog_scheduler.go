package scheduler

import (
	"github.com/dpaiva/lojinha-backend/internal/app/repository"
	"github.com/dpaiva/lojinha-backend/internal/catalog"
	"github.com/dpaiva/lojinha-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CatalogScheduler periodically reloads the in-memory catalog snapshot
// from the database, so seeded changes reach the storefront without a
// restart.
type CatalogScheduler struct {
	cron        *cron.Cron
	productRepo repository.ProductRepository
	feed        *catalog.Feed
	spec        string
}

func NewCatalogScheduler(productRepo repository.ProductRepository, feed *catalog.Feed, spec string) *CatalogScheduler {
	return &CatalogScheduler{
		cron:        cron.New(),
		productRepo: productRepo,
		feed:        feed,
		spec:        spec,
	}
}

// Start registers and starts the refresh job.
func (s *CatalogScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.refresh)
	if err != nil {
		logger.Error("Failed to add cron job for catalog refresh", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Catalog refresh scheduler started", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

func (s *CatalogScheduler) refresh() {
	logger.Info("Starting scheduled catalog refresh", nil)

	products, err := s.productRepo.FindAll()
	if err != nil {
		// Keep serving the previous snapshot.
		logger.Error("Failed to refresh catalog snapshot", err, nil)
		return
	}

	s.feed.Reload(products)
	logger.Info("Catalog snapshot refreshed", map[string]interface{}{
		"count": len(products),
	})
}

// Stop stops the scheduler.
func (s *CatalogScheduler) Stop() {
	logger.Info("Stopping catalog refresh scheduler...", nil)
	s.cron.Stop()
	logger.Info("Catalog refresh scheduler stopped", nil)
}
