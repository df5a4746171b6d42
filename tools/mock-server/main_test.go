package main

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/donaldgifford/pricepi/pkg/pricepi"
)

const testKey = "test-account-key"

var testNow = time.Unix(1420070400, 0)

func loadTestFixture(t *testing.T) []pricepi.Product {
	t.Helper()
	products, err := loadFixture(filepath.Join("testdata", "products.xml"))
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	return products
}

// newTestServer starts the mock behind httptest and returns a client signed
// with key whose clock is pinned to testNow.
func newTestServer(t *testing.T, key string, maxSkew time.Duration) *pricepi.Client {
	t.Helper()

	h := &searchHandler{
		logger:     testLogger(),
		products:   loadTestFixture(t),
		accountKey: testKey,
		maxSkew:    maxSkew,
		nowFunc:    func() time.Time { return testNow },
	}
	mux := http.NewServeMux()
	mux.Handle("GET "+apiPath, h)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return pricepi.New("mock-client", key,
		pricepi.WithEndpoint(srv.URL+apiPath),
		pricepi.WithNowFunc(func() time.Time { return testNow }),
	)
}

func TestLoadFixture(t *testing.T) {
	products := loadTestFixture(t)
	if len(products) != 5 {
		t.Fatalf("products=%d, want 5", len(products))
	}
	if products[3].Name != "Salt & Pepper Grinder Set" {
		t.Errorf("name=%q, want entity decoded", products[3].Name)
	}
}

func TestLoadFixture_Missing(t *testing.T) {
	if _, err := loadFixture("testdata/nope.xml"); err == nil {
		t.Fatal("expected error for missing fixture")
	}
}

func TestSearch_RoundTrip(t *testing.T) {
	client := newTestServer(t, testKey, 0)

	products, err := client.Query(context.Background(), pricepi.SearchRequest{
		Query:    "galaxy   s5",
		Currency: "USD",
		Limit:    10,
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("products=%d, want 3", len(products))
	}
	if products[0].ID != "1001" {
		t.Errorf("first id=%s, want 1001 (fixture order)", products[0].ID)
	}
	if got := products[0].PriceText(); got != "299.90" {
		t.Errorf("price=%s, want 299.90", got)
	}
	if got := products[0].Date.String(); got != "2015-01-02" {
		t.Errorf("date=%s, want 2015-01-02", got)
	}
}

func TestSearch_EntitiesSurviveRoundTrip(t *testing.T) {
	client := newTestServer(t, testKey, 0)

	products, err := client.Query(context.Background(), pricepi.SearchRequest{
		Query: "salt", Currency: "USD", Limit: 1,
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Salt & Pepper Grinder Set" {
		t.Fatalf("products=%v", products)
	}
}

func TestSearch_SortAndPaging(t *testing.T) {
	client := newTestServer(t, testKey, 0)

	products, err := client.Query(context.Background(), pricepi.SearchRequest{
		Query:    "galaxy",
		Currency: "USD",
		SortBy:   pricepi.SortPrice,
		Offset:   1,
		Limit:    1,
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(products) != 1 || products[0].ID != "1001" {
		t.Fatalf("products=%v, want second cheapest 1001", products)
	}
}

func TestSearch_MaxLimit(t *testing.T) {
	client := newTestServer(t, testKey, 0)

	all, err := client.Query(context.Background(), pricepi.SearchRequest{
		Query: "galaxy", Currency: "USD", SortBy: pricepi.SortPrice, Limit: 100,
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}

	products, err := client.Query(context.Background(), pricepi.SearchRequest{
		Query:    "galaxy",
		Currency: "USD",
		SortBy:   pricepi.SortPrice,
		Offset:   1,
		Limit:    math.MaxInt,
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(products) != len(all)-1 || products[0].ID != "1001" {
		t.Fatalf("products=%v, want all but the cheapest", products)
	}
}

func TestSearch_SellerFilter(t *testing.T) {
	client := newTestServer(t, testKey, 0)

	products, err := client.Query(context.Background(), pricepi.SearchRequest{
		Currency: "USD", Seller: "Kitchen Co", Limit: 10,
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("products=%d, want 2", len(products))
	}
}

func TestSearch_NoResults(t *testing.T) {
	client := newTestServer(t, testKey, 0)

	products, err := client.Query(context.Background(), pricepi.SearchRequest{
		Query: "nonexistent_xyz_product", Currency: "USD", Limit: 10,
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if products == nil || len(products) != 0 {
		t.Errorf("products=%v, want empty non-nil", products)
	}
}

func TestSearch_BadAuthCode(t *testing.T) {
	client := newTestServer(t, "wrong-key", 0)

	_, err := client.Query(context.Background(), pricepi.SearchRequest{
		Query: "galaxy", Currency: "USD", Limit: 10,
	})
	var remoteErr *pricepi.RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("err=%v, want RemoteError", err)
	}
	if remoteErr.Message != msgBadAuthCode {
		t.Errorf("message=%q, want %q", remoteErr.Message, msgBadAuthCode)
	}
}

func TestSearch_TimestampSkew(t *testing.T) {
	h := &searchHandler{
		logger:     testLogger(),
		products:   loadTestFixture(t),
		accountKey: testKey,
		maxSkew:    time.Minute,
		nowFunc:    func() time.Time { return testNow.Add(2 * time.Minute) },
	}

	sig := pricepi.Sign(pricepi.SearchRequest{Query: "galaxy", Currency: "USD", Limit: 10}, "c", testKey, testNow.Unix())
	req := httptest.NewRequest(http.MethodGet, apiPath+"?"+sig.Values.Encode(), http.NoBody)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), msgExpired) {
		t.Errorf("body=%s, want %q", w.Body.String(), msgExpired)
	}
}

func TestParseOffsetLimit(t *testing.T) {
	tests := []struct {
		in         string
		wantOffset int
		wantLimit  int
		wantOK     bool
	}{
		{in: "0 10", wantOffset: 0, wantLimit: 10, wantOK: true},
		{in: "20 5", wantOffset: 20, wantLimit: 5, wantOK: true},
		{in: "10", wantOK: false},
		{in: "0 0", wantOK: false},
		{in: "-1 10", wantOK: false},
		{in: "a b", wantOK: false},
		{in: "1 9223372036854775807", wantOffset: 1, wantLimit: math.MaxInt, wantOK: true},
	}

	for _, tt := range tests {
		offset, limit, ok := parseOffsetLimit(tt.in)
		if ok != tt.wantOK || offset != tt.wantOffset || limit != tt.wantLimit {
			t.Errorf("parseOffsetLimit(%q) = %d, %d, %v; want %d, %d, %v",
				tt.in, offset, limit, ok, tt.wantOffset, tt.wantLimit, tt.wantOK)
		}
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}
