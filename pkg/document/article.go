package document

import "time"

// Article is a document published under a title together with its
// rendered markup.
type Article struct {
	ID       string
	Title    string
	Document *Document
	Markup   string
	// Version is the editor version that last saved the article.
	Version   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
