package service

import (
	"errors"

	"github.com/dpaiva/lojinha-backend/internal/app/model"
	"github.com/dpaiva/lojinha-backend/internal/catalog"
	"github.com/dpaiva/lojinha-backend/pkg/logger"
)

var ErrProductNotFound = errors.New("product not found")

// FilterMetadata feeds the storefront filter panel: the distinct brands
// and the global price range of the catalog.
type FilterMetadata struct {
	Brands   []string `json:"brands"`
	PriceMin float64  `json:"price_min"`
	PriceMax float64  `json:"price_max"`
}

type CatalogService interface {
	List(filter catalog.Filter, key catalog.SortKey) []model.Product
	GetProduct(id uint) (*model.Product, error)
	FilterMetadata() FilterMetadata
}

type catalogService struct {
	feed *catalog.Feed
}

func NewCatalogService(feed *catalog.Feed) CatalogService {
	return &catalogService{feed: feed}
}

// List narrows the feed snapshot with the composed filter predicate and
// orders the result by the sort key. Filtering preserves feed order, so
// the stable sort's tie-breaking is deterministic.
func (s *catalogService) List(filter catalog.Filter, key catalog.SortKey) []model.Product {
	products := filter.Apply(s.feed.Products())
	products = catalog.Apply(products, key)

	logger.Debug("Catalog listed", map[string]interface{}{
		"total":    s.feed.Len(),
		"matched":  len(products),
		"sort_key": string(key),
	})
	return products
}

func (s *catalogService) GetProduct(id uint) (*model.Product, error) {
	product, ok := s.feed.Product(id)
	if !ok {
		logger.Warn("Product not found in catalog", map[string]interface{}{
			"product_id": id,
		})
		return nil, ErrProductNotFound
	}
	return &product, nil
}

func (s *catalogService) FilterMetadata() FilterMetadata {
	meta := FilterMetadata{Brands: s.feed.Brands()}
	if min, max, ok := s.feed.PriceBounds(); ok {
		meta.PriceMin = min
		meta.PriceMax = max
	}
	return meta
}
