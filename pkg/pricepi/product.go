package pricepi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Date is a calendar date without time of day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses the API's YYYY_MM_DD date format. Month and day may be
// one or two digits.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(s, "_")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q is not YYYY_MM_DD", ErrInvalidDate, s)
	}

	y, okY := dateNumber(parts[0], 4, 4)
	m, okM := dateNumber(parts[1], 1, 2)
	d, okD := dateNumber(parts[2], 1, 2)
	if !okY || !okM || !okD {
		return Date{}, fmt.Errorf("%w: %q is not YYYY_MM_DD", ErrInvalidDate, s)
	}

	// time.Date normalizes overflow, so a changed field means out of range.
	date := DateOf(time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC))
	if date.Year != y || int(date.Month) != m || date.Day != d {
		return Date{}, fmt.Errorf("%w: %q is out of range", ErrInvalidDate, s)
	}
	return date, nil
}

// dateNumber parses an unsigned decimal of minLen to maxLen digits.
func dateNumber(s string, minLen, maxLen int) (int, bool) {
	if len(s) < minLen || len(s) > maxLen {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText encodes d as "YYYY-MM-DD", or "" for the zero Date.
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a "YYYY-MM-DD" string. An empty string yields the
// zero Date.
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(time.DateOnly, string(b))
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", b, err)
	}
	*d = DateOf(t)
	return nil
}

// Product is one search result.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Seller   string          `json:"seller"`
	URL      string          `json:"url"`
	ImageURL string          `json:"image_url"`
	Date     Date            `json:"date"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
}

// PriceText renders Price with the scale it was parsed with, so "12.50"
// stays "12.50".
func (p Product) PriceText() string {
	if exp := p.Price.Exponent(); exp < 0 {
		return p.Price.StringFixed(-exp)
	}
	return p.Price.String()
}

// MarshalJSON encodes the price as a string that keeps its scale.
func (p Product) MarshalJSON() ([]byte, error) {
	type product Product
	return json.Marshal(struct {
		product
		Price string `json:"price"`
	}{
		product: product(p),
		Price:   p.PriceText(),
	})
}

func (p Product) String() string {
	return fmt.Sprintf("Product(%q, %q, %q, %q, %q, %s, %s, %q)",
		p.ID, p.Name, p.Seller, p.URL, p.ImageURL, p.Date, p.PriceText(), p.Currency)
}
