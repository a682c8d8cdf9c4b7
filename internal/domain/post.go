package domain

// Post is a single entry from the social feed. It is never persisted; only
// the URL survives, as the notification text sent to subscribers.
type Post struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}
