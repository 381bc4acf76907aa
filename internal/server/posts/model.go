package posts

import "time"

// Post is a board entry. Content is nil when the client omitted it.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   *string   `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
