package workspace

import (
	"encoding/json"
	"net/url"
	"strconv"
	"time"
)

// Parent locates a resource inside the workspace hierarchy. Exactly
// one locator field is set, matching Type.
type Parent struct {
	Type       string `json:"type,omitempty"`
	DatabaseID string `json:"database_id,omitempty"`
	PageID     string `json:"page_id,omitempty"`
	BlockID    string `json:"block_id,omitempty"`
	Workspace  bool   `json:"workspace,omitempty"`
}

// Page is a document in the workspace. Property payloads are kept raw;
// their schema belongs to the remote API, not to this client.
type Page struct {
	Object         string                     `json:"object"`
	ID             string                     `json:"id"`
	CreatedTime    time.Time                  `json:"created_time"`
	LastEditedTime time.Time                  `json:"last_edited_time"`
	Archived       bool                       `json:"archived"`
	Parent         Parent                     `json:"parent"`
	Properties     map[string]json.RawMessage `json:"properties,omitempty"`
	URL            string                     `json:"url,omitempty"`
}

// Database is a structured collection of pages.
type Database struct {
	Object         string                     `json:"object"`
	ID             string                     `json:"id"`
	CreatedTime    time.Time                  `json:"created_time"`
	LastEditedTime time.Time                  `json:"last_edited_time"`
	Title          json.RawMessage            `json:"title,omitempty"`
	Parent         Parent                     `json:"parent"`
	Properties     map[string]json.RawMessage `json:"properties,omitempty"`
	URL            string                     `json:"url,omitempty"`
}

// Block is one content node of a page. The type-specific payload stays
// raw for the same reason page properties do.
type Block struct {
	Object         string          `json:"object"`
	ID             string          `json:"id"`
	Type           string          `json:"type"`
	CreatedTime    time.Time       `json:"created_time"`
	LastEditedTime time.Time       `json:"last_edited_time"`
	HasChildren    bool            `json:"has_children"`
	Archived       bool            `json:"archived"`
	Parent         Parent          `json:"parent"`
	Content        json.RawMessage `json:"content,omitempty"`
}

// User is a workspace member or integration identity.
type User struct {
	Object    string `json:"object"`
	ID        string `json:"id"`
	Type      string `json:"type,omitempty"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Comment is a discussion entry attached to a page or block.
type Comment struct {
	Object       string          `json:"object"`
	ID           string          `json:"id"`
	Parent       Parent          `json:"parent"`
	DiscussionID string          `json:"discussion_id,omitempty"`
	CreatedTime  time.Time       `json:"created_time"`
	CreatedBy    User            `json:"created_by"`
	RichText     json.RawMessage `json:"rich_text,omitempty"`
}

// Pagination selects one page of a cursored listing.
type Pagination struct {
	StartCursor string `json:"start_cursor,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
}

// query renders the pagination as URL query parameters, or nil when
// unset.
func (p Pagination) query() url.Values {
	if p.StartCursor == "" && p.PageSize <= 0 {
		return nil
	}
	q := url.Values{}
	if p.StartCursor != "" {
		q.Set("start_cursor", p.StartCursor)
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	return q
}

// SearchRequest describes one workspace-wide search.
type SearchRequest struct {
	Query       string          `json:"query,omitempty"`
	Filter      json.RawMessage `json:"filter,omitempty"`
	Sort        json.RawMessage `json:"sort,omitempty"`
	StartCursor string          `json:"start_cursor,omitempty"`
	PageSize    int             `json:"page_size,omitempty"`
}

// SearchResult is one page of search matches. Results mix resource
// types, so they stay raw.
type SearchResult struct {
	Object     string            `json:"object"`
	Results    []json.RawMessage `json:"results"`
	HasMore    bool              `json:"has_more"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

// QueryDatabaseRequest describes one database query.
type QueryDatabaseRequest struct {
	Filter      json.RawMessage `json:"filter,omitempty"`
	Sorts       json.RawMessage `json:"sorts,omitempty"`
	StartCursor string          `json:"start_cursor,omitempty"`
	PageSize    int             `json:"page_size,omitempty"`
}

// QueryResult is one page of database rows.
type QueryResult struct {
	Object     string `json:"object"`
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// BlockList is one page of child blocks.
type BlockList struct {
	Object     string  `json:"object"`
	Results    []Block `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor string  `json:"next_cursor,omitempty"`
}

// UserList is one page of workspace users.
type UserList struct {
	Object     string `json:"object"`
	Results    []User `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// CommentList is one page of comments.
type CommentList struct {
	Object     string    `json:"object"`
	Results    []Comment `json:"results"`
	HasMore    bool      `json:"has_more"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// CreatePageRequest creates a page under a database or page parent.
type CreatePageRequest struct {
	Parent     Parent                     `json:"parent"`
	Properties map[string]json.RawMessage `json:"properties,omitempty"`
	Children   []json.RawMessage          `json:"children,omitempty"`
}

// UpdatePageRequest patches page properties or archive state.
type UpdatePageRequest struct {
	Properties map[string]json.RawMessage `json:"properties,omitempty"`
	Archived   *bool                      `json:"archived,omitempty"`
}

// AppendBlockChildrenRequest appends content under a block or page.
type AppendBlockChildrenRequest struct {
	Children []json.RawMessage `json:"children"`
}

// CreateCommentRequest starts or continues a discussion.
type CreateCommentRequest struct {
	Parent       *Parent         `json:"parent,omitempty"`
	DiscussionID string          `json:"discussion_id,omitempty"`
	RichText     json.RawMessage `json:"rich_text"`
}
