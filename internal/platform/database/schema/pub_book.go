package schema

// PubBookTable represents the 'pub.book' table
type PubBookTable struct {
	Table            string
	ID               string
	CategoryID       string
	Title            string
	Slug             string
	Description      string
	CoverURL         string
	Status           string
	ISBNConfirmation string
	CreatedAt        string
	UpdatedAt        string
	DeletedAt        string
}

// PubBook is the schema definition for pub.book
var PubBook = PubBookTable{
	Table:            "pub.book",
	ID:               "id",
	CategoryID:       "categoryid",
	Title:            "title",
	Slug:             "slug",
	Description:      "description",
	CoverURL:         "coverurl",
	Status:           "status",
	ISBNConfirmation: "isbnconfirmation",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
	DeletedAt:        "deletedat",
}

// Columns returns all standard column names
func (t PubBookTable) Columns() []string {
	return []string{
		t.ID, t.CategoryID, t.Title, t.Slug, t.Description, t.CoverURL,
		t.Status, t.ISBNConfirmation, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
