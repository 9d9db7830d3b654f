package faqdex

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Ask submits a question using the service's configured threshold and
// match count.
func (c *Client) Ask(ctx context.Context, question string) (Reply, error) {
	return c.AskWithOptions(ctx, question, -1, 0)
}

// AskWithOptions submits a question with per-request overrides. A negative
// threshold and a non-positive topK fall back to the service defaults; an
// explicit threshold of zero retains the best match regardless of score.
func (c *Client) AskWithOptions(
	ctx context.Context, question string, threshold float64, topK int,
) (_ Reply, err error) {
	start := time.Now()
	defer func() { c.obs.observe("ask", start, err) }()

	req := askRequest{Question: question}
	if threshold >= 0 {
		req.Threshold = &threshold
	}
	if topK > 0 {
		req.TopK = &topK
	}

	var reply Reply
	if err = c.do(ctx, http.MethodPost, "/ask", nil, req, &reply); err != nil {
		return Reply{}, err
	}
	return reply, nil
}

// SimilarQuestions returns up to topK corpus questions closest to the entry
// at index. A non-positive topK uses the service default.
func (c *Client) SimilarQuestions(
	ctx context.Context, index, topK int,
) (_ []SimilarQuestion, err error) {
	start := time.Now()
	defer func() { c.obs.observe("question.similar", start, err) }()

	var resp listResponse[SimilarQuestion]
	path := fmt.Sprintf("/questions/%d/similar", index)
	if err = c.do(ctx, http.MethodGet, path, listQuery("top_k", topK), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}
