package workspace

import (
	"context"
	"net/http"

	"github.com/jonwraymond/docspace/cache"
	"github.com/jonwraymond/docspace/observe"
)

// GetBlock retrieves one content block. Cached on the resource tier.
func (c *Client) GetBlock(ctx context.Context, blockID string, opts ...CallOption) (*Block, error) {
	if blockID == "" {
		return nil, ErrMissingID
	}

	meta := observe.OpMeta{Op: opBlock, Resource: "block", Method: http.MethodGet}
	params := map[string]any{"block_id": blockID}

	payload, err := c.cachedCall(ctx, meta, params, cache.TTLResource,
		applyCallOptions(opts), http.MethodGet, "/v1/blocks/"+blockID, nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[Block](payload)
}

// GetBlockChildren returns one page of children under a block or page.
// Cached on the volatile tier per cursor.
func (c *Client) GetBlockChildren(ctx context.Context, blockID string, pg Pagination, opts ...CallOption) (*BlockList, error) {
	if blockID == "" {
		return nil, ErrMissingID
	}

	meta := observe.OpMeta{Op: opBlockChildren, Resource: "block", Method: http.MethodGet}
	params := map[string]any{
		"block_id":     blockID,
		"start_cursor": pg.StartCursor,
		"page_size":    intParam(pg.PageSize),
	}

	payload, err := c.cachedCall(ctx, meta, params, cache.TTLVolatile,
		applyCallOptions(opts), http.MethodGet, "/v1/blocks/"+blockID+"/children", pg.query(), nil)
	if err != nil {
		return nil, err
	}
	return decode[BlockList](payload)
}

// AppendBlockChildren appends content under a block or page. It stales
// the child listings of the parent, the parent block itself, and the
// page entry sharing the parent's ID.
func (c *Client) AppendBlockChildren(ctx context.Context, blockID string, req AppendBlockChildrenRequest) (*BlockList, error) {
	if blockID == "" {
		return nil, ErrMissingID
	}

	meta := observe.OpMeta{Op: opAppendBlocks, Resource: "block", Method: http.MethodPatch}

	payload, err := c.call(ctx, meta, http.MethodPatch, "/v1/blocks/"+blockID+"/children", nil, req)
	if err != nil {
		return nil, err
	}

	removed := c.store.InvalidatePattern(ctx,
		blockChildrenPattern(c.store.Namespace(), blockID))
	removed += c.invalidateBlockRead(ctx, blockID)
	// Page IDs double as block IDs for top-level content; drop the
	// page entry too in case the parent is a page.
	removed += c.invalidatePageReads(ctx, blockID)
	c.mw.Invalidated(ctx, meta, removed)

	return decode[BlockList](payload)
}

// DeleteBlock archives a block. The deleted block's own parent is
// unknown here, so every cached child listing is staled.
func (c *Client) DeleteBlock(ctx context.Context, blockID string) (*Block, error) {
	if blockID == "" {
		return nil, ErrMissingID
	}

	meta := observe.OpMeta{Op: opDeleteBlock, Resource: "block", Method: http.MethodDelete}

	payload, err := c.call(ctx, meta, http.MethodDelete, "/v1/blocks/"+blockID, nil, nil)
	if err != nil {
		return nil, err
	}

	removed := c.invalidateBlockRead(ctx, blockID)
	removed += c.store.InvalidatePrefix(ctx, opBlockChildren+":")
	c.mw.Invalidated(ctx, meta, removed)

	return decode[Block](payload)
}

func (c *Client) invalidateBlockRead(ctx context.Context, blockID string) int {
	key, err := c.keyer.Key(opBlock, map[string]any{"block_id": blockID})
	if err != nil {
		return 0
	}
	if c.store.Invalidate(ctx, key) {
		return 1
	}
	return 0
}
