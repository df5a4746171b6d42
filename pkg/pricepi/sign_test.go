package pricepi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/pricepi/pkg/pricepi"
)

const testTS = int64(1420070400)

func TestNormalizeQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "runs removed not collapsed", input: "foo   bar", want: "foobar"},
		{name: "tabs and newlines", input: "\tfoo\nbar\r\n baz\v\f", want: "foobarbaz"},
		{name: "empty", input: "", want: ""},
		{name: "only whitespace", input: "   ", want: ""},
		{name: "non-ascii kept", input: "café au lait", want: "caféaulait"},
		{name: "plus kept", input: "c++ book", want: "c++book"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pricepi.NormalizeQuery(tt.input))
		})
	}
}

func TestOffsetLimit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0 10", pricepi.OffsetLimit(0, 10))
	assert.Equal(t, "20 5", pricepi.OffsetLimit(20, 5))
}

func TestHashPreimage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		req      pricepi.SearchRequest
		clientID string
		want     string
	}{
		{
			name: "whitespace and plus stripped across whole preimage",
			req: pricepi.SearchRequest{
				Query:    "foo   bar",
				Currency: "USD",
				Seller:   "Acme Store",
				SortBy:   pricepi.SortRelevance,
				Offset:   0,
				Limit:    10,
			},
			clientID: "client-1",
			want:     "foobarUSDAcmeStorerelevance0101420070400client-1",
		},
		{
			name: "empty sort defaults to relevance",
			req: pricepi.SearchRequest{
				Query:    "widget",
				Currency: "GBP",
				Offset:   3,
				Limit:    7,
			},
			clientID: "id",
			want:     "widgetGBPrelevance371420070400id",
		},
		{
			name: "empty query and seller contribute nothing",
			req: pricepi.SearchRequest{
				Currency: "USD",
				SortBy:   pricepi.SortPrice,
				Limit:    1,
			},
			clientID: "id",
			want:     "USDprice011420070400id",
		},
		{
			name: "plus inside client id is stripped",
			req: pricepi.SearchRequest{
				Query:    "x",
				Currency: "USD",
				SortBy:   pricepi.SortPrice,
				Limit:    1,
			},
			clientID: "a+b c",
			want:     "xUSDprice011420070400abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := pricepi.HashPreimage(tt.req, testTS, tt.clientID)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSign(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		req          pricepi.SearchRequest
		clientID     string
		key          string
		wantAuthCode string
		wantQuery    string
		wantLimit    string
	}{
		{
			name: "ascii request",
			req: pricepi.SearchRequest{
				Query:    "foo   bar",
				Currency: "USD",
				Seller:   "Acme Store",
				SortBy:   pricepi.SortRelevance,
				Offset:   0,
				Limit:    10,
			},
			clientID:     "client-1",
			key:          "s3cret",
			wantAuthCode: "2cbb90d39aaa7e4c6bba653dd26a3a4809bf1ae2cb040346c69158e9bcf9bb7d",
			wantQuery:    "foobar",
			wantLimit:    "0 10",
		},
		{
			name: "utf-8 query and seller",
			req: pricepi.SearchRequest{
				Query:    "café au lait",
				Currency: "EUR",
				Seller:   "Bäckerei",
				SortBy:   pricepi.SortPrice,
				Offset:   5,
				Limit:    20,
			},
			clientID:     "client-1",
			key:          "s3cret",
			wantAuthCode: "08738d88e5f20de4503fe344d6f94a2a924533f4f2cb9e68b8323b2859bde91a",
			wantQuery:    "caféaulait",
			wantLimit:    "5 20",
		},
		{
			name: "empty query and seller",
			req: pricepi.SearchRequest{
				Currency: "USD",
				SortBy:   pricepi.SortPrice,
				Limit:    1,
			},
			clientID:     "id",
			key:          "key",
			wantAuthCode: "a226d57438da913132178e94faa39326b917a3486d0ab4ab147d7a4033b81f08",
			wantQuery:    "",
			wantLimit:    "0 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sig := pricepi.Sign(tt.req, tt.clientID, tt.key, testTS)

			assert.Equal(t, testTS, sig.Timestamp)
			assert.Equal(t, tt.wantAuthCode, sig.AuthCode)

			v := sig.Values
			assert.Equal(t, tt.wantQuery, v.Get("query"))
			assert.Equal(t, tt.req.Currency, v.Get("currency"))
			assert.Equal(t, tt.req.Seller, v.Get("seller"))
			assert.Equal(t, string(tt.req.SortBy), v.Get("sortby"))
			assert.Equal(t, tt.wantLimit, v.Get("limit"))
			assert.Equal(t, "1420070400", v.Get("timestamp"))
			assert.Equal(t, tt.clientID, v.Get("uniqid"))
			assert.Equal(t, tt.wantAuthCode, v.Get("authcode"))
			assert.Len(t, v, 8)
		})
	}
}

func TestSign_Deterministic(t *testing.T) {
	t.Parallel()

	req := pricepi.SearchRequest{Query: "gpu", Currency: "USD", Limit: 10}

	a := pricepi.Sign(req, "id", "key", testTS)
	b := pricepi.Sign(req, "id", "key", testTS)
	c := pricepi.Sign(req, "id", "key", testTS+1)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a.AuthCode, c.AuthCode)
}

func TestSign_PlusEncodedOnlyForHashing(t *testing.T) {
	t.Parallel()

	req := pricepi.SearchRequest{Currency: "USD", SortBy: pricepi.SortPrice, Offset: 0, Limit: 10}
	sig := pricepi.Sign(req, "id", "key", testTS)

	// The transmitted value is the raw pair; Encode turns the space into "+".
	assert.Equal(t, "0 10", sig.Values.Get("limit"))
	assert.Contains(t, sig.Values.Encode(), "limit=0+10")

	// The hashed form is "0+10" with the plus then stripped.
	assert.Equal(t, "USDprice0101420070400id", pricepi.HashPreimage(req, testTS, "id"))
}

func TestAuthCode(t *testing.T) {
	t.Parallel()

	// sha256("abc")
	assert.Equal(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		pricepi.AuthCode("ab", "c"),
	)
}

func TestVerify(t *testing.T) {
	t.Parallel()

	req := pricepi.SearchRequest{
		Query:    "café   au lait",
		Currency: "EUR",
		Seller:   "Bäckerei Müller",
		SortBy:   pricepi.SortPrice,
		Offset:   40,
		Limit:    20,
	}
	sig := pricepi.Sign(req, "client-1", "s3cret", testTS)

	assert.True(t, pricepi.Verify(sig.Values, "s3cret"))
	assert.False(t, pricepi.Verify(sig.Values, "wrong"))

	tampered := cloneValues(sig.Values)
	tampered.Set("currency", "USD")
	assert.False(t, pricepi.Verify(tampered, "s3cret"))

	badTS := cloneValues(sig.Values)
	badTS.Set("timestamp", "not-a-number")
	assert.False(t, pricepi.Verify(badTS, "s3cret"))
}

func TestClient_Sign_FreshTimestamp(t *testing.T) {
	t.Parallel()

	ts := testTS
	c := pricepi.New("id", "key", pricepi.WithNowFunc(nowFunc(&ts)))
	req := pricepi.SearchRequest{Query: "ssd", Currency: "USD", Limit: 5}

	first, err := c.Sign(req)
	require.NoError(t, err)

	ts += 30
	second, err := c.Sign(req)
	require.NoError(t, err)

	assert.Equal(t, testTS, first.Timestamp)
	assert.Equal(t, testTS+30, second.Timestamp)
	assert.NotEqual(t, first.AuthCode, second.AuthCode)
}

func TestClient_Sign_InvalidRequest(t *testing.T) {
	t.Parallel()

	c := pricepi.New("id", "key")
	_, err := c.Sign(pricepi.SearchRequest{Query: "x", Limit: 0})
	require.ErrorIs(t, err, pricepi.ErrInvalidPaging)
}
