package faqdex

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Categories lists the distinct categories in the corpus.
func (c *Client) Categories(ctx context.Context) (_ []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("category.list", start, err) }()

	var resp listResponse[string]
	if err = c.do(ctx, http.MethodGet, "/categories", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// QuestionsByCategory lists up to limit entries in a category. Matching is
// case-insensitive; an unknown category yields an empty list. A non-positive
// limit uses the service default.
func (c *Client) QuestionsByCategory(
	ctx context.Context, category string, limit int,
) (_ []Entry, err error) {
	start := time.Now()
	defer func() { c.obs.observe("category.questions", start, err) }()

	var resp listResponse[Entry]
	path := "/categories/" + url.PathEscape(category)
	if err = c.do(ctx, http.MethodGet, path, listQuery("limit", limit), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// SearchQuestions lists up to limit entries whose keywords contain any of
// the given keywords. A non-positive limit uses the service default.
func (c *Client) SearchQuestions(
	ctx context.Context, keywords []string, limit int,
) (_ []Entry, err error) {
	start := time.Now()
	defer func() { c.obs.observe("question.search", start, err) }()

	q := url.Values{}
	for _, kw := range keywords {
		q.Add("keyword", kw)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var resp listResponse[Entry]
	if err = c.do(ctx, http.MethodGet, "/search", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// PopularQuestions returns suggested questions weighted toward the
// service's configured popular categories. A non-positive count uses the
// service default.
func (c *Client) PopularQuestions(ctx context.Context, count int) (_ []Entry, err error) {
	start := time.Now()
	defer func() { c.obs.observe("suggestion.popular", start, err) }()

	var resp listResponse[Entry]
	if err = c.do(ctx, http.MethodGet, "/suggestions", listQuery("count", count), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// RandomQuestions returns count entries sampled from the corpus without
// repetition. A non-positive count uses the service default.
func (c *Client) RandomQuestions(ctx context.Context, count int) (_ []Entry, err error) {
	start := time.Now()
	defer func() { c.obs.observe("suggestion.random", start, err) }()

	var resp listResponse[Entry]
	if err = c.do(ctx, http.MethodGet, "/suggestions/random", listQuery("count", count), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Statistics reports corpus and conversation counters.
func (c *Client) Statistics(ctx context.Context) (_ Statistics, err error) {
	start := time.Now()
	defer func() { c.obs.observe("stats", start, err) }()

	var stats Statistics
	if err = c.do(ctx, http.MethodGet, "/stats", nil, nil, &stats); err != nil {
		return Statistics{}, err
	}
	return stats, nil
}
