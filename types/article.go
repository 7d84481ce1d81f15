package types

import "time"

// Category is the topical label assigned to an article by the classifier.
type Category string

const (
	CategoryMentalHealth Category = "Mental Health"
	CategoryDiseases     Category = "Diseases & Treatment"
	CategoryResearch     Category = "Medical Research"
	CategoryNutrition    Category = "Nutrition & Wellness"

	// CategoryExcluded marks articles that do not belong in the health feed.
	// Articles carrying it never reach a client.
	CategoryExcluded Category = "Non-Health"
)

// RawSource is the publisher block of an upstream article record.
type RawSource struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// RawArticle is an untrusted article record as returned by a headlines
// provider. Any field may be empty.
type RawArticle struct {
	Source      RawSource `json:"source"`
	Author      string    `json:"author"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	URLToImage  string    `json:"urlToImage"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Article is the canonical article entity served to clients.
//
// IDs are assigned sequentially at normalization time and are stable only
// within one cache generation; a refresh reassigns them.
type Article struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Source      string    `json:"source"`
	Author      string    `json:"author,omitempty"`
	URL         string    `json:"url,omitempty"`
	URLToImage  string    `json:"urlToImage,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	Category    Category  `json:"category"`
	ReadTime    string    `json:"readTime"`

	// TitleKey is the lower-cased, trimmed title used for deduplication
	// within a generation. Not part of the wire shape.
	TitleKey string `json:"-"`

	TLDR              *string  `json:"tldr"`
	KeyTakeaways      []string `json:"keyTakeaways"`
	SimplifiedContent *string  `json:"simplifiedContent,omitempty"`
	IsSummarized      bool     `json:"isSummarized"`
}
