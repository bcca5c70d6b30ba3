package schema

// PubTransactionHistoryTable represents the 'pub.transactionhistory' table
type PubTransactionHistoryTable struct {
	Table          string
	ID             string
	ChapterID      string
	CollaboratorID string
	CheckedByID    string
	Status         string
	Notes          string
	CreatedAt      string
}

// PubTransactionHistory is the schema definition for pub.transactionhistory
var PubTransactionHistory = PubTransactionHistoryTable{
	Table:          "pub.transactionhistory",
	ID:             "id",
	ChapterID:      "chapterid",
	CollaboratorID: "collaboratorid",
	CheckedByID:    "checkedbyid",
	Status:         "status",
	Notes:          "notes",
	CreatedAt:      "createdat",
}

// Columns returns all standard column names
func (t PubTransactionHistoryTable) Columns() []string {
	return []string{
		t.ID, t.ChapterID, t.CollaboratorID, t.CheckedByID, t.Status, t.Notes, t.CreatedAt,
	}
}
