package pricepi

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/url"
	"regexp"
	"strconv"
)

// The API hashes byte strings and only treats ASCII whitespace as
// separators; RE2's \s omits \v, so the classes are spelled out.
var (
	queryWhitespace = regexp.MustCompile(`[\t\n\v\f\r ]+`)
	preimageStrip   = regexp.MustCompile(`[+\t\n\v\f\r ]+`)
)

// Request parameter names.
const (
	paramQuery     = "query"
	paramCurrency  = "currency"
	paramSeller    = "seller"
	paramSortBy    = "sortby"
	paramLimit     = "limit"
	paramTimestamp = "timestamp"
	paramUniqID    = "uniqid"
	paramAuthCode  = "authcode"
)

// Signature is a signed parameter set for one request.
type Signature struct {
	Timestamp int64
	AuthCode  string
	Values    url.Values
}

// NormalizeQuery removes every run of whitespace from q. Runs are dropped,
// not collapsed to a single space.
func NormalizeQuery(q string) string {
	return queryWhitespace.ReplaceAllString(q, "")
}

// OffsetLimit formats the combined paging parameter, offset first.
func OffsetLimit(offset, limit int) string {
	return strconv.Itoa(offset) + " " + strconv.Itoa(limit)
}

// HashPreimage builds the canonical string hashed into the authcode, without
// the account key. The offset/limit pair is plus-encoded here only; the
// transmitted limit parameter stays raw.
func HashPreimage(req SearchRequest, ts int64, clientID string) string {
	s := NormalizeQuery(req.Query) +
		req.Currency +
		req.Seller +
		string(req.Sort()) +
		url.QueryEscape(OffsetLimit(req.Offset, req.Limit)) +
		strconv.FormatInt(ts, 10) +
		clientID
	return preimageStrip.ReplaceAllString(s, "")
}

// AuthCode returns the lowercase hex SHA-256 of preimage followed by the
// account key.
func AuthCode(preimage, accountKey string) string {
	sum := sha256.Sum256([]byte(preimage + accountKey))
	return hex.EncodeToString(sum[:])
}

// RequestParams builds the outgoing query parameters for a signed request.
func RequestParams(req SearchRequest, ts int64, clientID, authCode string) url.Values {
	return url.Values{
		paramQuery:     {NormalizeQuery(req.Query)},
		paramCurrency:  {req.Currency},
		paramSeller:    {req.Seller},
		paramSortBy:    {string(req.Sort())},
		paramLimit:     {OffsetLimit(req.Offset, req.Limit)},
		paramTimestamp: {strconv.FormatInt(ts, 10)},
		paramUniqID:    {clientID},
		paramAuthCode:  {authCode},
	}
}

// Sign signs req for the given client at Unix time ts. It is a pure function
// of its arguments.
func Sign(req SearchRequest, clientID, accountKey string, ts int64) Signature {
	code := AuthCode(HashPreimage(req, ts, clientID), accountKey)
	return Signature{
		Timestamp: ts,
		AuthCode:  code,
		Values:    RequestParams(req, ts, clientID, code),
	}
}

// Verify reports whether values carry a valid authcode for accountKey. It
// recomputes the signature from the transmitted parameters the way the API
// does.
func Verify(values url.Values, accountKey string) bool {
	ts, err := strconv.ParseInt(values.Get(paramTimestamp), 10, 64)
	if err != nil {
		return false
	}
	s := values.Get(paramQuery) +
		values.Get(paramCurrency) +
		values.Get(paramSeller) +
		values.Get(paramSortBy) +
		url.QueryEscape(values.Get(paramLimit)) +
		strconv.FormatInt(ts, 10) +
		values.Get(paramUniqID)
	want := AuthCode(preimageStrip.ReplaceAllString(s, ""), accountKey)
	return subtle.ConstantTimeCompare([]byte(values.Get(paramAuthCode)), []byte(want)) == 1
}
