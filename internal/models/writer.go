package models

// Writer is the aggregate root for the posts it authored.
type Writer struct {
	ID        int64
	FirstName string
	LastName  string
	Status    Status
	// Posts is nil when the caller did not load or does not manage posts.
	Posts []*Post
}
