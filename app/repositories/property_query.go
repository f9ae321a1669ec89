package repositories

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Defaults for property search pagination.
const (
	DefaultPage     = 1
	DefaultPageSize = 12
)

// SearchQuery carries the recognized property-search options. Zero values
// mean "not supplied". Filter and FindOptions are both derived from the
// same normalized state, so the count and the page slice always agree.
type SearchQuery struct {
	Keyword   string // matched against address OR propertyName, case-insensitive substring
	Type      string
	Offer     string
	Status    string
	Furnished string
	Loan      string
	Bhk       string // parsed to an integer; ignored when unparseable
	MinPrice  string // inclusive lower bound
	MaxPrice  string // inclusive upper bound
	Page      int
	PageSize  int
	Sort      string // newest | oldest | price_asc | price_desc
}

// ParseSearchQuery decodes URL query parameters into a SearchQuery.
// `keyword` and `location` are aliases; keyword wins when both are present.
func ParseSearchQuery(values url.Values) SearchQuery {
	q := SearchQuery{
		Keyword:   values.Get("keyword"),
		Type:      values.Get("type"),
		Offer:     values.Get("offer"),
		Status:    values.Get("status"),
		Furnished: values.Get("furnished"),
		Loan:      values.Get("loan"),
		Bhk:       values.Get("bhk"),
		MinPrice:  values.Get("minPrice"),
		MaxPrice:  values.Get("maxPrice"),
		Sort:      values.Get("sort"),
	}
	if q.Keyword == "" {
		q.Keyword = values.Get("location")
	}
	q.Page, _ = strconv.Atoi(values.Get("page"))
	q.PageSize, _ = strconv.Atoi(values.Get("pageSize"))
	return q.normalized()
}

func (q SearchQuery) normalized() SearchQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	return q
}

// Filter builds the match predicate. All filters compose with logical AND;
// the keyword search contributes an AND'd OR-pair over the two text fields.
func (q SearchQuery) Filter() bson.M {
	filter := bson.M{}

	if term := strings.TrimSpace(q.Keyword); term != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
		filter["$or"] = []bson.M{
			{"address": re},
			{"propertyName": re},
		}
	}

	for field, value := range map[string]string{
		"type":      q.Type,
		"offer":     q.Offer,
		"status":    q.Status,
		"furnished": q.Furnished,
		"loan":      q.Loan,
	} {
		if value != "" {
			filter[field] = value
		}
	}

	if q.Bhk != "" {
		if n, err := strconv.Atoi(q.Bhk); err == nil {
			filter["bhk"] = n
		}
	}

	price := bson.M{}
	if q.MinPrice != "" {
		if n, err := strconv.ParseFloat(q.MinPrice, 64); err == nil {
			price["$gte"] = n
		}
	}
	if q.MaxPrice != "" {
		if n, err := strconv.ParseFloat(q.MaxPrice, 64); err == nil {
			price["$lte"] = n
		}
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	return filter
}

// SortOrder maps the sort option onto a fixed order; unrecognized values
// fall back to newest-first.
func (q SearchQuery) SortOrder() bson.D {
	switch q.Sort {
	case "oldest":
		return bson.D{{Key: "createdAt", Value: 1}}
	case "price_asc":
		return bson.D{{Key: "price", Value: 1}}
	case "price_desc":
		return bson.D{{Key: "price", Value: -1}}
	default: // newest
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

// Skip returns the number of documents before the requested page.
func (q SearchQuery) Skip() int64 {
	n := q.normalized()
	return int64(n.Page-1) * int64(n.PageSize)
}

// Limit returns the page size as a driver limit.
func (q SearchQuery) Limit() int64 {
	return int64(q.normalized().PageSize)
}

// FindOptions assembles sort, skip and limit for the page slice.
func (q SearchQuery) FindOptions() *options.FindOptions {
	return options.Find().
		SetSort(q.SortOrder()).
		SetSkip(q.Skip()).
		SetLimit(q.Limit())
}

// Pages returns ceil(total/pageSize) for the normalized page size.
func (q SearchQuery) Pages(total int64) int64 {
	size := int64(q.normalized().PageSize)
	return (total + size - 1) / size
}
