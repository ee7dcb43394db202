package workspace

import (
	"context"
	"net/http"

	"github.com/jonwraymond/docspace/cache"
	"github.com/jonwraymond/docspace/observe"
)

// GetPage retrieves one page. Cached on the resource tier.
func (c *Client) GetPage(ctx context.Context, pageID string, opts ...CallOption) (*Page, error) {
	if pageID == "" {
		return nil, ErrMissingID
	}

	meta := observe.OpMeta{Op: opPage, Resource: "page", Method: http.MethodGet}
	params := map[string]any{"page_id": pageID}

	payload, err := c.cachedCall(ctx, meta, params, cache.TTLResource,
		applyCallOptions(opts), http.MethodGet, "/v1/pages/"+pageID, nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[Page](payload)
}

// CreatePage creates a page under a database or page parent. It stales
// every cached search result, and every cached query listing of the
// parent database when the parent is a database.
func (c *Client) CreatePage(ctx context.Context, req CreatePageRequest) (*Page, error) {
	meta := observe.OpMeta{Op: opCreatePage, Resource: "page", Method: http.MethodPost}

	payload, err := c.call(ctx, meta, http.MethodPost, "/v1/pages", nil, req)
	if err != nil {
		return nil, err
	}

	removed := c.store.InvalidatePrefix(ctx, opSearch+":")
	if req.Parent.DatabaseID != "" {
		removed += c.store.InvalidatePattern(ctx,
			databaseQueryPattern(c.store.Namespace(), req.Parent.DatabaseID))
	}
	c.mw.Invalidated(ctx, meta, removed)

	return decode[Page](payload)
}

// UpdatePage patches page properties. It stales the cached page and
// every cached search result.
func (c *Client) UpdatePage(ctx context.Context, pageID string, req UpdatePageRequest) (*Page, error) {
	if pageID == "" {
		return nil, ErrMissingID
	}

	meta := observe.OpMeta{Op: opUpdatePage, Resource: "page", Method: http.MethodPatch}

	payload, err := c.call(ctx, meta, http.MethodPatch, "/v1/pages/"+pageID, nil, req)
	if err != nil {
		return nil, err
	}

	removed := c.invalidatePageReads(ctx, pageID)
	removed += c.store.InvalidatePrefix(ctx, opSearch+":")
	c.mw.Invalidated(ctx, meta, removed)

	return decode[Page](payload)
}

// ArchivePage archives a page. The parent is unknown at this point, so
// besides the page itself and all search results, every cached
// database query listing is conservatively staled.
func (c *Client) ArchivePage(ctx context.Context, pageID string) (*Page, error) {
	if pageID == "" {
		return nil, ErrMissingID
	}

	meta := observe.OpMeta{Op: opArchivePage, Resource: "page", Method: http.MethodPatch}

	archived := true
	req := UpdatePageRequest{Archived: &archived}
	payload, err := c.call(ctx, meta, http.MethodPatch, "/v1/pages/"+pageID, nil, req)
	if err != nil {
		return nil, err
	}

	removed := c.invalidatePageReads(ctx, pageID)
	removed += c.store.InvalidatePrefix(ctx, opSearch+":")
	removed += c.store.InvalidatePrefix(ctx, opDatabaseQuery+":")
	c.mw.Invalidated(ctx, meta, removed)

	return decode[Page](payload)
}

// invalidatePageReads drops the exact cache entry for one page, using
// the same keyer that cached it.
func (c *Client) invalidatePageReads(ctx context.Context, pageID string) int {
	key, err := c.keyer.Key(opPage, map[string]any{"page_id": pageID})
	if err != nil {
		return 0
	}
	if c.store.Invalidate(ctx, key) {
		return 1
	}
	return 0
}
