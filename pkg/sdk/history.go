package faqdex

import (
	"context"
	"net/http"
	"time"
)

// History returns recorded interactions, oldest first. A positive limit
// keeps only the most recent records.
func (c *Client) History(ctx context.Context, limit int) (_ []Record, err error) {
	start := time.Now()
	defer func() { c.obs.observe("history.list", start, err) }()

	var resp listResponse[Record]
	if err = c.do(ctx, http.MethodGet, "/history", listQuery("limit", limit), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// ClearHistory removes all recorded interactions.
func (c *Client) ClearHistory(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("history.clear", start, err) }()

	return c.do(ctx, http.MethodDelete, "/history", nil, nil, nil)
}
