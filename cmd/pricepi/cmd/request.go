package cmd

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/pricepi/pkg/pricepi"
)

// requestFlags are the search parameters shared by search and sign.
type requestFlags struct {
	currency string
	seller   string
	limit    int
	offset   int
	sort     string
	unknown  bool
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.currency, "currency", "USD", "currency code")
	cmd.Flags().StringVar(&f.seller, "seller", "", "merchant name filter")
	cmd.Flags().IntVar(&f.limit, "limit", 10, "maximum number of results")
	cmd.Flags().IntVar(&f.offset, "offset", 0, "result offset")
	cmd.Flags().StringVar(&f.sort, "sort", string(pricepi.SortRelevance), "sort order (relevance, price)")
	cmd.Flags().BoolVar(&f.unknown, "unknown-sellers", false, "include sellers unknown to Pricepi")
}

func (f *requestFlags) request(query string) (pricepi.SearchRequest, error) {
	sort, err := pricepi.ParseSortOrder(f.sort)
	if err != nil {
		return pricepi.SearchRequest{}, err
	}
	req := pricepi.SearchRequest{
		Query:                 query,
		Currency:              f.currency,
		Seller:                f.seller,
		Limit:                 f.limit,
		Offset:                f.offset,
		SortBy:                sort,
		IncludeUnknownSellers: f.unknown,
	}
	return req, req.Validate()
}
