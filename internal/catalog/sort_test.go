package catalog

import (
	"testing"
	"time"

	"github.com/dpaiva/lojinha-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func timep(t time.Time) *time.Time { return &t }

func prices(products []model.Product) []float64 {
	out := make([]float64, len(products))
	for i, p := range products {
		out[i] = p.Price
	}
	return out
}

func ids(products []model.Product) []uint {
	out := make([]uint, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestApply_Relevance_PreservesFeedOrder(t *testing.T) {
	products := []model.Product{
		{ID: 1, Price: 300},
		{ID: 2, Price: 100},
		{ID: 3, Price: 200},
	}

	result := Apply(products, SortRelevance)
	assert.Equal(t, []uint{1, 2, 3}, ids(result))
}

func TestApply_PriceAscending(t *testing.T) {
	products := []model.Product{
		{ID: 1, Price: 300},
		{ID: 2, Price: 100},
		{ID: 3, Price: 200},
	}

	result := Apply(products, SortPriceAsc)
	assert.Equal(t, []float64{100, 200, 300}, prices(result))
}

func TestApply_PriceDescending(t *testing.T) {
	products := []model.Product{
		{ID: 1, Price: 300},
		{ID: 2, Price: 100},
		{ID: 3, Price: 200},
	}

	result := Apply(products, SortPriceDesc)
	assert.Equal(t, []float64{300, 200, 100}, prices(result))
}

func TestApply_PriceTiesKeepFeedOrder(t *testing.T) {
	products := []model.Product{
		{ID: 1, Price: 100},
		{ID: 2, Price: 50},
		{ID: 3, Price: 100},
		{ID: 4, Price: 100},
	}

	result := Apply(products, SortPriceAsc)
	assert.Equal(t, []uint{2, 1, 3, 4}, ids(result))
}

func TestApply_RatingDescending_MissingAsZero(t *testing.T) {
	products := []model.Product{
		{ID: 1, Rating: f64(3.5)},
		{ID: 2}, // unrated sorts as zero
		{ID: 3, Rating: f64(4.8)},
	}

	result := Apply(products, SortRating)
	assert.Equal(t, []uint{3, 1, 2}, ids(result))
}

func TestApply_SoldDescending(t *testing.T) {
	products := []model.Product{
		{ID: 1, Sold: intp(100)},
		{ID: 2, Sold: intp(900)},
		{ID: 3}, // never sold
		{ID: 4, Sold: intp(900)},
	}

	result := Apply(products, SortSold)
	assert.Equal(t, []uint{2, 4, 1, 3}, ids(result))
}

func TestApply_Newest_MostRecentFirst_MissingLast(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	products := []model.Product{
		{ID: 1, CreatedAt: timep(base.AddDate(0, 0, 1))},
		{ID: 2}, // no timestamp sorts last
		{ID: 3, CreatedAt: timep(base.AddDate(0, 0, 10))},
		{ID: 4, CreatedAt: timep(base)},
	}

	result := Apply(products, SortNewest)
	assert.Equal(t, []uint{3, 1, 4, 2}, ids(result))
}

func TestApply_Newest_TimestampTiesKeepFeedOrder(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	products := []model.Product{
		{ID: 1, CreatedAt: timep(base)},
		{ID: 2, CreatedAt: timep(base)},
		{ID: 3},
		{ID: 4},
	}

	result := Apply(products, SortNewest)
	assert.Equal(t, []uint{1, 2, 3, 4}, ids(result))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	products := []model.Product{
		{ID: 1, Price: 300},
		{ID: 2, Price: 100},
	}

	_ = Apply(products, SortPriceAsc)
	assert.Equal(t, []uint{1, 2}, ids(products))
}

func TestParseSortKey(t *testing.T) {
	require.Equal(t, SortPriceAsc, ParseSortKey("preco-asc"))
	require.Equal(t, SortPriceDesc, ParseSortKey("preco-desc"))
	require.Equal(t, SortRating, ParseSortKey("avaliacao"))
	require.Equal(t, SortSold, ParseSortKey("vendidos"))
	require.Equal(t, SortNewest, ParseSortKey("novidades"))

	// Unknown and empty values fall back to the default.
	assert.Equal(t, DefaultSortKey, ParseSortKey(""))
	assert.Equal(t, DefaultSortKey, ParseSortKey("preco"))
	assert.Equal(t, DefaultSortKey, ParseSortKey("banana"))
}
