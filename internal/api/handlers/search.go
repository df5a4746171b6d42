package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/pricepi/pkg/pricepi"
)

// SearchHandler handles Pricepi search requests.
type SearchHandler struct {
	searcher pricepi.Searcher
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(s pricepi.Searcher) *SearchHandler {
	return &SearchHandler{searcher: s}
}

// SearchInput holds the query parameters for the search endpoint.
type SearchInput struct {
	Query    string `query:"query"    doc:"Product search text, whitespace is removed before sending" example:"samsung galaxy s5"`
	Currency string `query:"currency" doc:"Currency code"                                             example:"USD" required:"true" minLength:"1"`
	Seller   string `query:"seller"   doc:"Merchant name filter, empty matches all"`
	Limit    int    `query:"limit"    doc:"Maximum results to return"                                 default:"10" minimum:"1"`
	Offset   int    `query:"offset"   doc:"Result offset"                                             default:"0"  minimum:"0"`
	Sort     string `query:"sort"     doc:"Sort order"                                                default:"relevance" enum:"relevance,price"`
	Unknown  bool   `query:"unknown"  doc:"Include sellers unknown to Pricepi"`
}

// SearchOutput is the response body for the search endpoint.
type SearchOutput struct {
	Body struct {
		Products []pricepi.Product `json:"products" doc:"Matching products in API order"`
		Count    int               `json:"count"    doc:"Number of products returned"`
	}
}

// Search proxies a search request to the Pricepi API.
func (h *SearchHandler) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	products, err := h.searcher.Query(ctx, pricepi.SearchRequest{
		Query:                 input.Query,
		Currency:              input.Currency,
		Seller:                input.Seller,
		Limit:                 input.Limit,
		Offset:                input.Offset,
		SortBy:                pricepi.SortOrder(input.Sort),
		IncludeUnknownSellers: input.Unknown,
	})
	if err != nil {
		return nil, searchError(err)
	}

	out := &SearchOutput{}
	out.Body.Products = products
	out.Body.Count = len(products)
	return out, nil
}

func searchError(err error) error {
	var remoteErr *pricepi.RemoteError
	switch {
	case errors.As(err, &remoteErr):
		return huma.Error502BadGateway("Pricepi error: " + remoteErr.Message)
	case errors.Is(err, pricepi.ErrInvalidPaging), errors.Is(err, pricepi.ErrInvalidSort):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return huma.Error504GatewayTimeout("Pricepi API timed out")
	default:
		return huma.Error502BadGateway("Pricepi API error: " + err.Error())
	}
}

// RegisterSearchRoutes registers search endpoints with the Huma API.
func RegisterSearchRoutes(api huma.API, h *SearchHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "search-products",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search Pricepi products",
		Description: "Signs and forwards one search to the Pricepi API and returns the parsed products.",
		Tags:        []string{"search"},
		Errors:      []int{http.StatusUnprocessableEntity, http.StatusBadGateway, http.StatusGatewayTimeout},
	}, h.Search)
}
