package workspace

import (
	"context"
	"net/http"

	"github.com/jonwraymond/docspace/cache"
	"github.com/jonwraymond/docspace/observe"
)

// GetDatabase retrieves a database's schema. Cached on the resource
// tier.
func (c *Client) GetDatabase(ctx context.Context, databaseID string, opts ...CallOption) (*Database, error) {
	if databaseID == "" {
		return nil, ErrMissingID
	}

	meta := observe.OpMeta{Op: opDatabase, Resource: "database", Method: http.MethodGet}
	params := map[string]any{"database_id": databaseID}

	payload, err := c.cachedCall(ctx, meta, params, cache.TTLResource,
		applyCallOptions(opts), http.MethodGet, "/v1/databases/"+databaseID, nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[Database](payload)
}

// QueryDatabase returns one page of rows matching the query. Every
// distinct filter, sort, and cursor combination caches separately on
// the volatile tier.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, req QueryDatabaseRequest, opts ...CallOption) (*QueryResult, error) {
	if databaseID == "" {
		return nil, ErrMissingID
	}

	meta := observe.OpMeta{Op: opDatabaseQuery, Resource: "database", Method: http.MethodPost}
	params := map[string]any{
		"database_id":  databaseID,
		"filter":       rawParam(req.Filter),
		"sorts":        rawParam(req.Sorts),
		"start_cursor": req.StartCursor,
		"page_size":    intParam(req.PageSize),
	}

	payload, err := c.cachedCall(ctx, meta, params, cache.TTLVolatile,
		applyCallOptions(opts), http.MethodPost, "/v1/databases/"+databaseID+"/query", nil, req)
	if err != nil {
		return nil, err
	}
	return decode[QueryResult](payload)
}

// CreateDatabaseRow inserts a page into a database. It is CreatePage
// with the parent fixed to the database.
func (c *Client) CreateDatabaseRow(ctx context.Context, databaseID string, req CreatePageRequest) (*Page, error) {
	if databaseID == "" {
		return nil, ErrMissingID
	}
	req.Parent = Parent{Type: "database_id", DatabaseID: databaseID}
	return c.CreatePage(ctx, req)
}
