package posts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wiryawan46/instagram-clone-be/apperror"
	"github.com/wiryawan46/instagram-clone-be/config"
	"github.com/wiryawan46/instagram-clone-be/db"
)

// listQuery is the shared shape of every post read: author populated from the
// users table, likes aggregated from post_likes as an ordered set. Listing
// order is explicit (newest first, id as tiebreaker) rather than whatever the
// store happens to return.
const listQuery = `
	SELECT p.id, p.title, p.body, p.photo, p.created_at, u.id, u.name,
	       COALESCE(array_agg(pl.user_id ORDER BY pl.created_at) FILTER (WHERE pl.user_id IS NOT NULL), '{}')
	FROM posts p
	JOIN users u ON u.id = p.post_by
	LEFT JOIN post_likes pl ON pl.post_id = p.id
	%s
	GROUP BY p.id, u.id, u.name
	ORDER BY p.created_at DESC, p.id DESC`

// PostService provides post creation, listing and like/unlike operations.
type PostService struct {
	db      db.Querier
	storage *config.StorageConfig
}

// NewPostService creates a new PostService. The storage configuration is used
// only to derive public image URLs for posts carrying a photo key.
func NewPostService(dbConn db.Querier, storage *config.StorageConfig) *PostService {
	return &PostService{db: dbConn, storage: storage}
}

// Create persists a new post owned by the given user.
func (s *PostService) Create(ctx context.Context, userID int64, req CreatePostRequest) (*Post, error) {
	fields := map[string]string{}
	if req.Title == "" {
		fields["title"] = "Title is required"
	}
	if req.Body == "" {
		fields["body"] = "Body is required"
	}
	if len(fields) > 0 {
		return nil, apperror.NewFieldValidationError("All fields are required", fields)
	}

	var photo *string
	if req.Photo != "" {
		photo = &req.Photo
	}

	post := &Post{
		Title:  req.Title,
		Body:   req.Body,
		Photo:  photo,
		Likes:  []int64{},
		PostBy: Author{ID: userID},
	}

	query := `INSERT INTO posts (title, body, photo, post_by)
              VALUES ($1, $2, $3, $4)
              RETURNING id, created_at`
	err := s.db.QueryRow(ctx, query, req.Title, req.Body, photo, userID).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return nil, apperror.NewDatabaseError("Error creating post", err)
	}

	if err := s.db.QueryRow(ctx, `SELECT name FROM users WHERE id = $1`, userID).Scan(&post.PostBy.Name); err != nil {
		return nil, apperror.NewDatabaseError("Error creating post", err)
	}

	s.attachImageURL(post)
	return post, nil
}

// ListAll returns every post, newest first, with authors populated.
func (s *PostService) ListAll(ctx context.Context) ([]Post, error) {
	return s.list(ctx, "")
}

// ListMine returns only the posts authored by the given user. Ownership is a
// query filter: another author's post can never appear in the result.
func (s *PostService) ListMine(ctx context.Context, userID int64) ([]Post, error) {
	return s.list(ctx, "WHERE p.post_by = $1", userID)
}

// Like adds the user to the post's likes set. The insert is a single atomic
// statement: liking twice is a no-op, and concurrent likes from different
// users cannot lose each other. Returns the updated post.
func (s *PostService) Like(ctx context.Context, postID, userID int64) (*Post, error) {
	query := `INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := s.db.Exec(ctx, query, postID, userID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return nil, apperror.NewNotFoundError("Post not found", nil)
		}
		return nil, apperror.NewDatabaseError("Error liking post", err)
	}
	return s.getByID(ctx, postID)
}

// Unlike removes the user from the post's likes set. Removing a like that
// was never there still succeeds; the likes set is simply unchanged. Returns
// the updated post, or NotFound if the post itself does not exist.
func (s *PostService) Unlike(ctx context.Context, postID, userID int64) (*Post, error) {
	query := `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`
	if _, err := s.db.Exec(ctx, query, postID, userID); err != nil {
		return nil, apperror.NewDatabaseError("Error unliking post", err)
	}
	return s.getByID(ctx, postID)
}

func (s *PostService) list(ctx context.Context, where string, args ...any) ([]Post, error) {
	rows, err := s.db.Query(ctx, listClause(where), args...)
	if err != nil {
		return nil, apperror.NewDatabaseError("Error fetching posts", err)
	}
	defer rows.Close()

	var result []Post
	for rows.Next() {
		var post Post
		if err := rows.Scan(
			&post.ID, &post.Title, &post.Body, &post.Photo, &post.CreatedAt,
			&post.PostBy.ID, &post.PostBy.Name, &post.Likes,
		); err != nil {
			return nil, apperror.NewDatabaseError("Error scanning post", err)
		}
		s.attachImageURL(&post)
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("Error fetching posts", err)
	}

	return result, nil
}

func (s *PostService) getByID(ctx context.Context, postID int64) (*Post, error) {
	var post Post
	err := s.db.QueryRow(ctx, listClause("WHERE p.id = $1"), postID).Scan(
		&post.ID, &post.Title, &post.Body, &post.Photo, &post.CreatedAt,
		&post.PostBy.ID, &post.PostBy.Name, &post.Likes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("Post not found", nil)
		}
		return nil, apperror.NewDatabaseError("Error fetching post", err)
	}
	s.attachImageURL(&post)
	return &post, nil
}

func (s *PostService) attachImageURL(post *Post) {
	if post.Photo != nil && *post.Photo != "" {
		post.ImageURL = s.storage.ObjectURL(*post.Photo)
	}
	if post.Likes == nil {
		post.Likes = []int64{}
	}
}

func listClause(where string) string {
	return fmt.Sprintf(listQuery, where)
}
