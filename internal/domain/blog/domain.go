package blog

import "time"

type Blog struct {
	ID          int64     `json:"blog_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	IsPublished bool      `json:"is_published"`
	UserID      int64     `json:"user_id"`
	CategoryID  *int64    `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
	ModifiedAt  time.Time `json:"modified_at"`
}

// WithCategory is a blog row joined with the name of its category,
// returned by the per-category listing.
type WithCategory struct {
	Blog
	CategoryName string `json:"name"`
}
