package schema

// PubCategoryTable represents the 'pub.category' table
type PubCategoryTable struct {
	Table       string
	ID          string
	Name        string
	Slug        string
	ImageURL    string
	Description string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// PubCategory is the schema definition for pub.category
var PubCategory = PubCategoryTable{
	Table:       "pub.category",
	ID:          "id",
	Name:        "name",
	Slug:        "slug",
	ImageURL:    "imageurl",
	Description: "description",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

// Columns returns all standard column names
func (t PubCategoryTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Slug, t.ImageURL, t.Description, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
