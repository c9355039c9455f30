package comment

import "time"

type Comment struct {
	ID         int64     `json:"comment_id"`
	Content    string    `json:"content"`
	UserID     int64     `json:"user_id"`
	BlogID     int64     `json:"blog_id"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}
