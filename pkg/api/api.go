// Package api defines the messages of checklists.v1.ChecklistService.
// Messages travel as JSON; see apiconnect for the handler and client.
package api

// Response is one row of a checklist as seen by the acting user.
type Response struct {
	User string `json:"user"`
	// Answer is "", "yes" or "no".
	Answer     string `json:"answer"`
	Note       string `json:"note"`
	IsCreator  bool   `json:"isCreator"`
	Capability string `json:"capability"`
	CanAnswer  bool   `json:"canAnswer"`
	CanNote    bool   `json:"canNote"`
}

// Checklist is a reconciled checklist with one row per roster member.
type Checklist struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Details   string      `json:"details"`
	Creator   string      `json:"creator,omitempty"`
	Responses []*Response `json:"responses"`
}

type ListChecklistsRequest struct{}

type ListChecklistsResponse struct {
	ActingUser string       `json:"actingUser"`
	Roster     []string     `json:"roster"`
	Checklists []*Checklist `json:"checklists"`
}

type CreateChecklistRequest struct {
	Title   string `json:"title"`
	Details string `json:"details"`
}

type CreateChecklistResponse struct {
	Checklist *Checklist `json:"checklist"`
}

type DeleteChecklistRequest struct {
	ChecklistID string `json:"checklistId"`
}

type DeleteChecklistResponse struct{}

type SetAnswerRequest struct {
	ChecklistID string `json:"checklistId"`
	User        string `json:"user"`
	Answer      string `json:"answer"`
}

type SetAnswerResponse struct {
	Checklist *Checklist `json:"checklist"`
}

type SetNoteRequest struct {
	ChecklistID string `json:"checklistId"`
	User        string `json:"user"`
	Note        string `json:"note"`
}

type SetNoteResponse struct {
	Checklist *Checklist `json:"checklist"`
}

// ImportDocumentRequest carries the raw text of an imported file.
type ImportDocumentRequest struct {
	Content string `json:"content"`
}

type ImportDocumentResponse struct {
	Count int `json:"count"`
}

type ExportDocumentRequest struct{}

// ExportDocumentResponse carries the pretty-printed document.
type ExportDocumentResponse struct {
	FileName string `json:"fileName"`
	Content  string `json:"content"`
}

// ClearDocumentRequest must set Confirm; clearing cannot be undone.
type ClearDocumentRequest struct {
	Confirm bool `json:"confirm"`
}

type ClearDocumentResponse struct{}

type GetActingUserRequest struct{}

type GetActingUserResponse struct {
	User   string   `json:"user"`
	Roster []string `json:"roster"`
}

type SetActingUserRequest struct {
	User string `json:"user"`
}

type SetActingUserResponse struct {
	User string `json:"user"`
}
