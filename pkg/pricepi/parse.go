package pricepi

import (
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/shopspring/decimal"
)

const (
	statusElement = "Pricepi_response"
	resultElement = "result"
)

// Result child element names.
const (
	fieldID       = "id"
	fieldName     = "name"
	fieldSeller   = "seller"
	fieldLocation = "location"
	fieldImage    = "image"
	fieldDate     = "date"
	fieldPrice    = "price"
	fieldCurrency = "currency"
)

// The API escapes text content before embedding it, so after the XML
// parser has decoded entities these three can still be present.
var entityUnescaper = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&amp;", "&")

// ParseResponse reads a Pricepi XML response. A non-empty message in the
// status element yields a *RemoteError and no products; otherwise every
// result element becomes a Product, in document order.
func ParseResponse(r io.Reader) ([]Product, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing XML response: %w", err)
	}

	if status := firstElement(doc, statusElement); status != nil {
		if msg := elementText(status); msg != "" {
			return nil, &RemoteError{Message: msg}
		}
	}

	nodes := xmlquery.Find(doc, "//"+resultElement)
	products := make([]Product, 0, len(nodes))
	for i, n := range nodes {
		p, err := parseProduct(n)
		if err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}
		products = append(products, p)
	}

	return products, nil
}

func parseProduct(n *xmlquery.Node) (Product, error) {
	var (
		p   Product
		err error
	)

	text := func(field string) string {
		if err != nil {
			return ""
		}
		var s string
		s, err = childText(n, field)
		return s
	}

	p.ID = text(fieldID)
	p.Name = text(fieldName)
	p.Seller = text(fieldSeller)
	p.URL = text(fieldLocation)
	p.ImageURL = text(fieldImage)
	rawDate := text(fieldDate)
	rawPrice := text(fieldPrice)
	p.Currency = text(fieldCurrency)
	if err != nil {
		return Product{}, err
	}

	if p.Date, err = ParseDate(rawDate); err != nil {
		return Product{}, &ParseError{Field: fieldDate, Value: rawDate, Err: err}
	}
	if p.Price, err = decimal.NewFromString(rawPrice); err != nil {
		return Product{}, &ParseError{Field: fieldPrice, Value: rawPrice, Err: err}
	}

	return p, nil
}

func childText(parent *xmlquery.Node, name string) (string, error) {
	n := firstElement(parent, name)
	if n == nil {
		return "", &ParseError{Field: name, Err: ErrMissingElement}
	}
	return elementText(n), nil
}

// firstElement returns the first descendant of parent named name, in
// document order.
func firstElement(parent *xmlquery.Node, name string) *xmlquery.Node {
	return xmlquery.FindOne(parent, "descendant::"+name)
}

// elementText joins the direct text and CDATA children of n, trims it and
// unescapes the basic XML entities. Nested elements are ignored.
func elementText(n *xmlquery.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.TextNode || c.Type == xmlquery.CharDataNode {
			b.WriteString(c.Data)
		}
	}
	return entityUnescaper.Replace(strings.TrimSpace(b.String()))
}
