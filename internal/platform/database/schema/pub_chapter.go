package schema

// PubChapterTable represents the 'pub.chapter' table
type PubChapterTable struct {
	Table          string
	ID             string
	BookID         string
	Part           string
	Title          string
	Price          string
	Deadline       string
	CoverURL       string
	Status         string
	PaymentProof   string
	Notes          string
	ExpiredAt      string
	CheckoutBy     string
	CheckedByID    string
	CollaboratedBy string
	CreatedAt      string
	UpdatedAt      string
	DeletedAt      string
}

// PubChapter is the schema definition for pub.chapter
var PubChapter = PubChapterTable{
	Table:          "pub.chapter",
	ID:             "id",
	BookID:         "bookid",
	Part:           "part",
	Title:          "title",
	Price:          "price",
	Deadline:       "deadline",
	CoverURL:       "coverurl",
	Status:         "status",
	PaymentProof:   "paymentproof",
	Notes:          "notes",
	ExpiredAt:      "expiredat",
	CheckoutBy:     "checkoutby",
	CheckedByID:    "checkedbyid",
	CollaboratedBy: "collaboratedby",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
	DeletedAt:      "deletedat",
}

// Columns returns all standard column names
func (t PubChapterTable) Columns() []string {
	return []string{
		t.ID, t.BookID, t.Part, t.Title, t.Price, t.Deadline, t.CoverURL,
		t.Status, t.PaymentProof, t.Notes, t.ExpiredAt, t.CheckoutBy,
		t.CheckedByID, t.CollaboratedBy, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
