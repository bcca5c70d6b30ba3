package schema

// PubCollaboratorTable represents the 'pub.collaborator' table
type PubCollaboratorTable struct {
	Table          string
	ID             string
	ChapterID      string
	CollaboratorID string
	Script         string
	Haki           string
	Identity       string
	Address        string
	Status         string
	Notes          string
	ReviewerID     string
	UploadedAt     string
	ReviewedAt     string
	CreatedAt      string
	UpdatedAt      string
	DeletedAt      string
}

// PubCollaborator is the schema definition for pub.collaborator
var PubCollaborator = PubCollaboratorTable{
	Table:          "pub.collaborator",
	ID:             "id",
	ChapterID:      "chapterid",
	CollaboratorID: "collaboratorid",
	Script:         "script",
	Haki:           "haki",
	Identity:       "identity",
	Address:        "address",
	Status:         "status",
	Notes:          "notes",
	ReviewerID:     "reviewerid",
	UploadedAt:     "uploadedat",
	ReviewedAt:     "reviewedat",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
	DeletedAt:      "deletedat",
}

// Columns returns all standard column names
func (t PubCollaboratorTable) Columns() []string {
	return []string{
		t.ID, t.ChapterID, t.CollaboratorID, t.Script, t.Haki, t.Identity,
		t.Address, t.Status, t.Notes, t.ReviewerID, t.UploadedAt,
		t.ReviewedAt, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
