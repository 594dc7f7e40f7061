package catalog

import (
	"net/url"
	"strconv"
)

// Query parameter names are the public contract of the storefront: URLs
// built by the existing frontend must keep decoding to the same filters,
// so the Portuguese keys stay.
const (
	paramSearch    = "busca"
	paramCategory  = "categoria"
	paramBrand     = "marca"
	paramPriceMin  = "precoMin"
	paramPriceMax  = "precoMax"
	paramRatingMin = "avaliacaoMin"
	paramSort      = "ordenar"
)

// EncodeQuery renders a filter and sort key as a query string. Absent
// fields are omitted, as is the default sort, so an unconstrained view
// encodes to the empty string.
func EncodeQuery(f Filter, key SortKey) string {
	values := url.Values{}
	if f.Search != "" {
		values.Set(paramSearch, f.Search)
	}
	if f.Category != "" {
		values.Set(paramCategory, f.Category)
	}
	if f.Brand != "" {
		values.Set(paramBrand, f.Brand)
	}
	if f.PriceMin != nil {
		values.Set(paramPriceMin, formatFloat(*f.PriceMin))
	}
	if f.PriceMax != nil {
		values.Set(paramPriceMax, formatFloat(*f.PriceMax))
	}
	if f.RatingMin != nil {
		values.Set(paramRatingMin, formatFloat(*f.RatingMin))
	}
	if key != DefaultSortKey && key != "" {
		values.Set(paramSort, string(key))
	}
	return values.Encode()
}

// ParseQuery reconstructs the filter and sort key from a query string.
// Unrecognized parameters are ignored; malformed numeric values are
// treated as absent. Parsing never fails.
func ParseQuery(values url.Values) (Filter, SortKey) {
	f := Filter{
		Search:    values.Get(paramSearch),
		Category:  values.Get(paramCategory),
		Brand:     values.Get(paramBrand),
		PriceMin:  parseFloat(values.Get(paramPriceMin)),
		PriceMax:  parseFloat(values.Get(paramPriceMax)),
		RatingMin: parseFloat(values.Get(paramRatingMin)),
	}
	return f, ParseSortKey(values.Get(paramSort))
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
