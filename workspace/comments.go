package workspace

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jonwraymond/docspace/cache"
	"github.com/jonwraymond/docspace/observe"
)

// GetComments returns one page of comments under a block or page.
// Discussions move fast, so listings cache on the volatile tier.
func (c *Client) GetComments(ctx context.Context, blockID string, pg Pagination, opts ...CallOption) (*CommentList, error) {
	if blockID == "" {
		return nil, ErrMissingID
	}

	meta := observe.OpMeta{Op: opComments, Resource: "comment", Method: http.MethodGet}
	params := map[string]any{
		"block_id":     blockID,
		"start_cursor": pg.StartCursor,
		"page_size":    intParam(pg.PageSize),
	}

	q := pg.query()
	if q == nil {
		q = url.Values{}
	}
	q.Set("block_id", blockID)

	payload, err := c.cachedCall(ctx, meta, params, cache.TTLVolatile,
		applyCallOptions(opts), http.MethodGet, "/v1/comments", q, nil)
	if err != nil {
		return nil, err
	}
	return decode[CommentList](payload)
}

// CreateComment adds a comment to a page, block, or existing
// discussion. It stales the cached comment listings of the parent, or
// every comment listing when only a discussion ID is given.
func (c *Client) CreateComment(ctx context.Context, req CreateCommentRequest) (*Comment, error) {
	meta := observe.OpMeta{Op: opCreateComment, Resource: "comment", Method: http.MethodPost}

	payload, err := c.call(ctx, meta, http.MethodPost, "/v1/comments", nil, req)
	if err != nil {
		return nil, err
	}

	var removed int
	if parent := commentParentID(req.Parent); parent != "" {
		removed = c.store.InvalidatePattern(ctx,
			commentsPattern(c.store.Namespace(), parent))
	} else {
		removed = c.store.InvalidatePrefix(ctx, opComments+":")
	}
	c.mw.Invalidated(ctx, meta, removed)

	return decode[Comment](payload)
}

func commentParentID(p *Parent) string {
	if p == nil {
		return ""
	}
	if p.BlockID != "" {
		return p.BlockID
	}
	return p.PageID
}
