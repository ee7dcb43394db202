package workspace

import (
	"context"
	"net/http"

	"github.com/jonwraymond/docspace/cache"
	"github.com/jonwraymond/docspace/observe"
)

// ListUsers returns one page of workspace members. Membership changes
// slowly, so listings cache on the identity tier.
func (c *Client) ListUsers(ctx context.Context, pg Pagination, opts ...CallOption) (*UserList, error) {
	meta := observe.OpMeta{Op: opUserList, Resource: "user", Method: http.MethodGet}
	params := map[string]any{
		"start_cursor": pg.StartCursor,
		"page_size":    intParam(pg.PageSize),
	}

	payload, err := c.cachedCall(ctx, meta, params, cache.TTLIdentity,
		applyCallOptions(opts), http.MethodGet, "/v1/users", pg.query(), nil)
	if err != nil {
		return nil, err
	}
	return decode[UserList](payload)
}

// GetUser retrieves one workspace member. Cached on the identity tier.
func (c *Client) GetUser(ctx context.Context, userID string, opts ...CallOption) (*User, error) {
	if userID == "" {
		return nil, ErrMissingID
	}

	meta := observe.OpMeta{Op: opUser, Resource: "user", Method: http.MethodGet}
	params := map[string]any{"user_id": userID}

	payload, err := c.cachedCall(ctx, meta, params, cache.TTLIdentity,
		applyCallOptions(opts), http.MethodGet, "/v1/users/"+userID, nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[User](payload)
}

// GetSelf retrieves the identity behind the integration token. Cached
// on the identity tier.
func (c *Client) GetSelf(ctx context.Context, opts ...CallOption) (*User, error) {
	meta := observe.OpMeta{Op: opSelf, Resource: "user", Method: http.MethodGet}

	payload, err := c.cachedCall(ctx, meta, nil, cache.TTLIdentity,
		applyCallOptions(opts), http.MethodGet, "/v1/users/me", nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[User](payload)
}
