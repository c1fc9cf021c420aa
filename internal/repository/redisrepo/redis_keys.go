package redisrepo

import "fmt"

const (
	POST_KEY          = "post:%d"                // <postID>
	POSTS_PAGE_KEY    = "posts-page:%s:%d:%d"    // <scope>:<limit>:<page>
	COMMENTS_PAGE_KEY = "comments-page:%s:%d:%d" // <scope>:<limit>:<page>
	USER_CACHE_KEY    = "user-cache:%s"          // <userID>

	POSTS_PAGE_PATTERN    = "posts-page:*"
	COMMENTS_PAGE_PATTERN = "comments-page:*"
)

func PostKey(postID int64) string {
	return fmt.Sprintf(POST_KEY, postID)
}

// PostsPageKey caches one page of the post list; scope is "all" or an
// author id.
func PostsPageKey(scope string, limit int, page int) string {
	return fmt.Sprintf(POSTS_PAGE_KEY, scope, limit, page)
}

func CommentsPageKey(scope string, limit int, page int) string {
	return fmt.Sprintf(COMMENTS_PAGE_KEY, scope, limit, page)
}

func UserCacheKey(userID string) string {
	return fmt.Sprintf(USER_CACHE_KEY, userID)
}
