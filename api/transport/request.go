package transport

import (
	"strconv"
	"strings"

	"github.com/valyala/fasthttp"
)

// MaxOrderByFields caps the orderby chain; anything past the cap is dropped.
const MaxOrderByFields = 32

// DefaultRecordCount is how many records a resource request generates when
// count is absent.
const DefaultRecordCount = 10

// ResourceQuery carries the per-request directives shared by the resource and
// result-cache endpoints.
type ResourceQuery struct {
	// Retain keeps the result set alive past this request.
	Retain bool
	// SummaryOnly omits the record list from the response.
	SummaryOnly bool
	// Count is the record count; nil when the parameter was absent.
	Count *int
	// Index is the 1-based page start; defaults to 1.
	Index int
	// CacheToken addresses an existing retained result set.
	CacheToken string
	// OrderBy lists the ordering fields, first field most significant.
	OrderBy []string
	// SimulateNoData forces an empty-result response.
	SimulateNoData bool
	// LegacyCache opts the serialized response into the legacy cache.
	LegacyCache bool
}

// ParseResourceQuery reads the recognized directives off the query string.
// Presence-style directives (retain, summaryonly) are true whenever the key
// appears, with or without a value.
func ParseResourceQuery(args *fasthttp.Args) ResourceQuery {
	q := ResourceQuery{Index: 1}

	q.Retain = args.Has("retain")
	q.SummaryOnly = args.Has("summaryonly")
	q.CacheToken = string(args.Peek("cachetoken"))
	q.SimulateNoData = string(args.Peek("simulate")) == "nodata"
	q.LegacyCache = string(args.Peek("cache")) == "true"

	if raw := string(args.Peek("count")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			q.Count = &v
		}
	}
	if raw := string(args.Peek("index")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			q.Index = v
		}
	}
	q.OrderBy = ParseOrderBy(string(args.Peek("orderby")))

	return q
}

// ParseOrderBy splits a comma-separated field list, dropping blanks and
// anything beyond the field cap.
func ParseOrderBy(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		fields = append(fields, p)
		if len(fields) == MaxOrderByFields {
			break
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// CountOrDefault resolves the generation count for an initial resource
// request.
func (q ResourceQuery) CountOrDefault() int {
	if q.Count == nil || *q.Count < 0 {
		return DefaultRecordCount
	}
	return *q.Count
}
