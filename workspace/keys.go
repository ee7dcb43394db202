package workspace

import "regexp"

// Operation tags. Each read operation gets a distinct tag; its full
// parameter set becomes part of the cache key.
const (
	opSearch        = "search"
	opPage          = "page"
	opDatabase      = "database"
	opDatabaseQuery = "database_query"
	opBlock         = "block"
	opBlockChildren = "block_children"
	opUserList      = "user_list"
	opUser          = "user"
	opSelf          = "me"
	opComments      = "comments"

	opCreatePage    = "create_page"
	opUpdatePage    = "update_page"
	opArchivePage   = "archive_page"
	opAppendBlocks  = "append_block_children"
	opDeleteBlock   = "delete_block"
	opCreateComment = "create_comment"
)

// nsPrefix returns the regexp fragment anchoring a pattern at the start
// of a full key for the given namespace.
func nsPrefix(namespace string) string {
	if namespace == "" {
		return "^"
	}
	return "^" + regexp.QuoteMeta(namespace) + ":"
}

// databaseQueryPattern matches every cached query listing for one
// database, regardless of filter, sort, or cursor.
func databaseQueryPattern(namespace, databaseID string) *regexp.Regexp {
	return regexp.MustCompile(nsPrefix(namespace) + opDatabaseQuery + `:.*` +
		regexp.QuoteMeta("database_id="+databaseID) + `(:|$)`)
}

// blockChildrenPattern matches every cached child listing under one
// block, regardless of cursor or page size.
func blockChildrenPattern(namespace, blockID string) *regexp.Regexp {
	return regexp.MustCompile(nsPrefix(namespace) + opBlockChildren + `:.*` +
		regexp.QuoteMeta("block_id="+blockID) + `(:|$)`)
}

// commentsPattern matches every cached comment listing under one
// parent block or page.
func commentsPattern(namespace, blockID string) *regexp.Regexp {
	return regexp.MustCompile(nsPrefix(namespace) + opComments + `:.*` +
		regexp.QuoteMeta("block_id="+blockID) + `(:|$)`)
}
