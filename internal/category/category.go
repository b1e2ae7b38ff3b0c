// Package category holds the fixed set of twelve life categories, their
// prompt questions, and the supported interface languages. This is static
// configuration: the store never validates membership against it.
package category

// Category is one of the twelve fixed life-topic groupings.
type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	CoverURL string `json:"coverUrl"`
}

// Progress reports how many prompts of a category a user has answered.
// Raw counts only; percentage math (and the total==0 guard) belongs to the
// presentation layer.
type Progress struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
}

// Languages lists the interface languages the client can pick before
// authenticating.
var Languages = []string{"en", "fr"}

var categories = []Category{
	{ID: 1, Name: "Early Life and Childhood", CoverURL: "https://images.unsplash.com/photo-1541781774459-bb2af2f05b55"},
	{ID: 2, Name: "Education", CoverURL: "https://images.unsplash.com/photo-1609667645138-e2b2e248a384"},
	{ID: 3, Name: "Career and Professional Life", CoverURL: "https://images.unsplash.com/photo-1609667678863-b6971ef1e63d"},
	{ID: 4, Name: "Personal Growth", CoverURL: "https://images.unsplash.com/photo-1582485939877-519c2e06750c"},
	{ID: 5, Name: "Family and Relationships", CoverURL: "https://images.unsplash.com/photo-1732950105499-e4aa03d6bc4c"},
	{ID: 6, Name: "Health and Well-being", CoverURL: "https://images.unsplash.com/photo-1666185761628-00a3655f4f7b"},
	{ID: 7, Name: "Hobbies and Interests", CoverURL: "https://images.unsplash.com/photo-1711602926101-faf831f56803"},
	{ID: 8, Name: "Major Life Events", CoverURL: "https://images.unsplash.com/photo-1533024115551-3925e1b0cd51"},
	{ID: 9, Name: "Values and Beliefs", CoverURL: "https://images.unsplash.com/photo-1495446815901-a7297e633e8d"},
	{ID: 10, Name: "Legacy and Impact", CoverURL: "https://images.unsplash.com/photo-1549638441-b787d2e11f14"},
	{ID: 11, Name: "Fun Memories", CoverURL: "https://images.unsplash.com/photo-1572805688879-63df2a286844"},
	{ID: 12, Name: "Dreams and Aspirations", CoverURL: "https://images.unsplash.com/photo-1705579296593-2194f6ad7883"},
}

// All returns the twelve categories in id order.
func All() []Category {
	return categories
}

// Get returns the category with the given id, or nil if the id is outside
// the fixed set.
func Get(id int64) *Category {
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i]
		}
	}
	return nil
}

// Prompts returns the prompt questions for a category, or nil for an
// unknown id.
func Prompts(id int64) []string {
	return prompts[id]
}
