// Package main implements a mock Pricepi API server for local development.
// It verifies request signatures with a configured account key and answers
// with products from an XML fixture, so the client and gateway can run
// without real Pricepi credentials.
package main

import (
	"encoding/xml"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/donaldgifford/pricepi/pkg/logger"
	"github.com/donaldgifford/pricepi/pkg/pricepi"
)

const apiPath = "/pricepiapi.pi"

// Messages returned in the Pricepi_response element on rejected requests.
const (
	msgBadAuthCode = "Invalid authcode"
	msgExpired     = "Request timestamp out of range"
	msgBadLimit    = "Invalid limit"
)

type xmlResponse struct {
	XMLName xml.Name    `xml:"Pricepi_response"`
	Message string      `xml:",chardata"`
	Results []xmlResult `xml:"result"`
}

type xmlResult struct {
	ID       string `xml:"id"`
	Name     string `xml:"name"`
	Seller   string `xml:"seller"`
	Location string `xml:"location"`
	Image    string `xml:"image"`
	Date     string `xml:"date"`
	Price    string `xml:"price"`
	Currency string `xml:"currency"`
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/products.xml", "path to products fixture")
	accountKey := flag.String("account-key", "mock-account-key", "account key used to verify authcodes")
	maxSkew := flag.Duration("max-skew", 0, "reject timestamps further than this from now (0 disables)")
	flag.Parse()

	log := logger.New("debug", logger.FormatText)

	fixture, err := loadFixture(*fixtureFile)
	if err != nil {
		log.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	log.Info("loaded fixture", "products", len(fixture))

	mux := http.NewServeMux()
	mux.Handle("GET "+apiPath, &searchHandler{
		logger:     log,
		products:   fixture,
		accountKey: *accountKey,
		maxSkew:    *maxSkew,
		nowFunc:    time.Now,
	})

	addr := fmt.Sprintf(":%d", *port)
	log.Info("starting mock Pricepi server", "addr", addr, "path", apiPath)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(log, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// loadFixture reads a Pricepi response document with the same parser the
// client uses.
func loadFixture(path string) ([]pricepi.Product, error) {
	f, err := os.Open(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	defer f.Close()

	products, err := pricepi.ParseResponse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return products, nil
}

func requestLogger(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The query string carries the authcode, so only its keys are logged.
		log.Debug("request", "method", r.Method, "path", r.URL.Path, "params", len(r.URL.Query()))
		next.ServeHTTP(w, r)
	})
}

type searchHandler struct {
	logger     *slog.Logger
	products   []pricepi.Product
	accountKey string
	maxSkew    time.Duration
	nowFunc    func() time.Time
}

func (h *searchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	if !pricepi.Verify(params, h.accountKey) {
		h.logger.Warn("rejected request", "reason", "authcode mismatch")
		writeXML(w, xmlResponse{Message: msgBadAuthCode})
		return
	}

	if h.maxSkew > 0 {
		ts, _ := strconv.ParseInt(params.Get("timestamp"), 10, 64) //nolint:errcheck // Verify already parsed it
		if skew := h.nowFunc().Sub(time.Unix(ts, 0)); skew > h.maxSkew || skew < -h.maxSkew {
			h.logger.Warn("rejected request", "reason", "timestamp skew", "skew", skew)
			writeXML(w, xmlResponse{Message: msgExpired})
			return
		}
	}

	offset, limit, ok := parseOffsetLimit(params.Get("limit"))
	if !ok {
		writeXML(w, xmlResponse{Message: msgBadLimit})
		return
	}

	matched := h.match(params.Get("query"), params.Get("seller"), params.Get("currency"))
	if params.Get("sortby") == string(pricepi.SortPrice) {
		slices.SortStableFunc(matched, func(a, b pricepi.Product) int {
			return a.Price.Cmp(b.Price)
		})
	}

	total := len(matched)
	if offset >= len(matched) {
		matched = nil
	} else {
		// limit can be as large as MaxInt, so offset+limit may overflow.
		limit = min(limit, len(matched)-offset)
		matched = matched[offset : offset+limit]
	}

	resp := xmlResponse{Results: make([]xmlResult, 0, len(matched))}
	for i := range matched {
		resp.Results = append(resp.Results, toXML(&matched[i]))
	}
	writeXML(w, resp)

	h.logger.Info("search",
		"query", params.Get("query"),
		"matched", total,
		"returned", len(matched),
		"offset", offset,
		"limit", limit,
	)
}

// match filters the fixture. Query matching ignores case and whitespace the
// same way the signer normalizes queries; an empty seller matches all.
func (h *searchHandler) match(query, seller, currency string) []pricepi.Product {
	q := strings.ToLower(pricepi.NormalizeQuery(query))

	var out []pricepi.Product
	for _, p := range h.products {
		name := strings.ToLower(pricepi.NormalizeQuery(p.Name))
		if q != "" && !strings.Contains(name, q) {
			continue
		}
		if seller != "" && !strings.EqualFold(seller, p.Seller) {
			continue
		}
		if currency != "" && !strings.EqualFold(currency, p.Currency) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// parseOffsetLimit parses the "<offset> <limit>" parameter.
func parseOffsetLimit(s string) (offset, limit int, ok bool) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, 0, false
	}
	offset, err := strconv.Atoi(fields[0])
	if err != nil || offset < 0 {
		return 0, 0, false
	}
	limit, err = strconv.Atoi(fields[1])
	if err != nil || limit < 1 {
		return 0, 0, false
	}
	return offset, limit, true
}

func toXML(p *pricepi.Product) xmlResult {
	return xmlResult{
		ID:       p.ID,
		Name:     p.Name,
		Seller:   p.Seller,
		Location: p.URL,
		Image:    p.ImageURL,
		Date:     p.Date.Time().Format("2006_01_02"),
		Price:    p.PriceText(),
		Currency: p.Currency,
	}
}

func writeXML(w http.ResponseWriter, resp xmlResponse) {
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	w.Write([]byte(xml.Header))
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	enc.Encode(resp)
}
