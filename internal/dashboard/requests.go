package dashboard

import (
	"strconv"

	"github.com/hamed0406/dashfetch/internal/domain"
)

// Requests builds the standard dashboard trio for one user: their profile,
// their posts, and their todos. Order matters to the sequential strategy,
// so the slice is always user, posts, todos. A limit of zero or less means
// unlimited and the _limit parameter is left off.
func Requests(userID, postsLimit, todosLimit int) []domain.ResourceRequest {
	uid := strconv.Itoa(userID)

	posts := map[string]string{"userId": uid}
	if postsLimit > 0 {
		posts["_limit"] = strconv.Itoa(postsLimit)
	}
	todos := map[string]string{"userId": uid}
	if todosLimit > 0 {
		todos["_limit"] = strconv.Itoa(todosLimit)
	}

	return []domain.ResourceRequest{
		{
			Name:  domain.ResourceUser,
			Path:  "/users/" + uid,
			Shape: domain.ShapeRecord,
		},
		{
			Name:  domain.ResourcePosts,
			Path:  "/posts",
			Query: posts,
			Shape: domain.ShapeList,
		},
		{
			Name:  domain.ResourceTodos,
			Path:  "/todos",
			Query: todos,
			Shape: domain.ShapeList,
		},
	}
}
