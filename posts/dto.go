package posts

// CreatePostRequest represents the create-post request payload. Photo is
// optional: a post may exist without an image.
type CreatePostRequest struct {
	Title string `json:"title" example:"Hi"`
	Body  string `json:"body" example:"First post"`
	Photo string `json:"photo,omitempty" example:"1632567890123_example.jpg"`
}

// LikeRequest identifies the post to like or unlike.
type LikeRequest struct {
	PostID int64 `json:"postId" example:"42"`
}

// PostsResponse wraps a list of posts.
type PostsResponse struct {
	Success bool   `json:"success" example:"true"`
	Posts   []Post `json:"posts"`
}

// PostResponse wraps a single post with a success message.
type PostResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message"`
	Post    *Post  `json:"post"`
}
