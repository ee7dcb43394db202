package workspace

import (
	"context"
	"net/http"

	"github.com/jonwraymond/docspace/cache"
	"github.com/jonwraymond/docspace/observe"
)

// Search runs a workspace-wide search. Results are cached on the
// volatile tier; any write that creates, updates, or archives a page
// invalidates them.
func (c *Client) Search(ctx context.Context, req SearchRequest, opts ...CallOption) (*SearchResult, error) {
	meta := observe.OpMeta{Op: opSearch, Method: http.MethodPost}
	params := map[string]any{
		"query":        req.Query,
		"filter":       rawParam(req.Filter),
		"sort":         rawParam(req.Sort),
		"start_cursor": req.StartCursor,
		"page_size":    intParam(req.PageSize),
	}

	payload, err := c.cachedCall(ctx, meta, params, cache.TTLVolatile,
		applyCallOptions(opts), http.MethodPost, "/v1/search", nil, req)
	if err != nil {
		return nil, err
	}
	return decode[SearchResult](payload)
}

// rawParam converts a raw JSON fragment into a key parameter, omitting
// empty fragments.
func rawParam(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

// intParam omits zero values from key construction.
func intParam(v int) any {
	if v == 0 {
		return nil
	}
	return v
}
