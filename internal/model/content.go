package model

// ContentType identifies which catalog a content item belongs to.
// Content items themselves live in an external catalog service; this
// backend only stores the (content_type, content_id) reference plus
// whatever display fields the client submitted.
type ContentType string

const (
	ContentTypeMovie ContentType = "movie"
	ContentTypeComic ContentType = "comic"
)

func (c ContentType) IsValid() bool {
	return c == ContentTypeMovie || c == ContentTypeComic
}
