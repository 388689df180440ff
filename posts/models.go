// Package posts implements the post feature: creating posts, listing them
// (all or scoped to the authenticated author), and the like/unlike set
// operations.
package posts

import "time"

// Author is the public summary of a post's author, populated on every post
// returned by the list endpoints.
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Post represents a post with its likes set and author populated.
type Post struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
	// Photo is the object-store key of the attached image, if any.
	Photo *string `json:"photo,omitempty"`
	// Likes holds the identifiers of users who liked the post. Each user
	// appears at most once.
	Likes     []int64   `json:"likes"`
	PostBy    Author    `json:"postBy"`
	CreatedAt time.Time `json:"createdAt"`
	// ImageURL is the public URL derived from Photo; empty when the post has
	// no photo.
	ImageURL string `json:"imageUrl,omitempty"`
}
