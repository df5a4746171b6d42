package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/pricepi/internal/api"
	"github.com/donaldgifford/pricepi/pkg/logger"
	"github.com/donaldgifford/pricepi/pkg/pricepi"
	pricepiMocks "github.com/donaldgifford/pricepi/pkg/pricepi/mocks"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.Query(context.Background(), pricepi.SearchRequest{Currency: "USD", Limit: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gateway not running")
}

func TestClient_InvalidRequest(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1")
	_, err := c.Query(context.Background(), pricepi.SearchRequest{Currency: "USD"})
	require.ErrorIs(t, err, pricepi.ErrInvalidPaging)
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`internal`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Query(context.Background(), pricepi.SearchRequest{Currency: "USD", Limit: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gateway error (HTTP 500): internal")
}

// TestClient_AgainstGateway runs the client against the real router backed
// by a mocked searcher.
func TestClient_AgainstGateway(t *testing.T) {
	t.Parallel()

	searcher := pricepiMocks.NewMockSearcher(t)
	searcher.EXPECT().
		Query(mock.Anything, pricepi.SearchRequest{
			Query:                 "galaxy s5",
			Currency:              "USD",
			Seller:                "Acme",
			Limit:                 3,
			Offset:                6,
			SortBy:                pricepi.SortPrice,
			IncludeUnknownSellers: true,
		}).
		Return([]pricepi.Product{{ID: "1", Name: "Phone", Currency: "USD"}}, nil).
		Once()
	searcher.EXPECT().
		Query(mock.Anything, mock.MatchedBy(func(r pricepi.SearchRequest) bool { return r.Query == "broken" })).
		Return(nil, &pricepi.RemoteError{Message: "Invalid authcode"}).
		Once()

	srv := httptest.NewServer(api.NewRouter(searcher, logger.Discard(), "test"))
	defer srv.Close()

	c := New(srv.URL + "/")

	products, err := c.Query(context.Background(), pricepi.SearchRequest{
		Query:                 "galaxy s5",
		Currency:              "USD",
		Seller:                "Acme",
		Limit:                 3,
		Offset:                6,
		SortBy:                pricepi.SortPrice,
		IncludeUnknownSellers: true,
	})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Phone", products[0].Name)

	_, err = c.Query(context.Background(), pricepi.SearchRequest{Query: "broken", Currency: "USD", Limit: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
	assert.Contains(t, err.Error(), "Pricepi error: Invalid authcode")
}
