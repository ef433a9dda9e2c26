package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/checklists/internal/app"
	"github.com/mmynk/checklists/internal/checklist"
	"github.com/mmynk/checklists/internal/models"
	"github.com/mmynk/checklists/pkg/api"
	"github.com/mmynk/checklists/pkg/api/apiconnect"
)

// ChecklistService implements the Connect ChecklistService
type ChecklistService struct {
	apiconnect.UnimplementedChecklistServiceHandler
	app *app.App
}

// NewChecklistService creates a new ChecklistService over the given app state.
func NewChecklistService(a *app.App) *ChecklistService {
	return &ChecklistService{app: a}
}

// ListChecklists returns every checklist, newest first, as the acting user sees it.
func (s *ChecklistService) ListChecklists(ctx context.Context, req *connect.Request[api.ListChecklistsRequest]) (*connect.Response[api.ListChecklistsResponse], error) {
	view := s.app.View(ctx)

	lists := make([]*api.Checklist, len(view.Checklists))
	for i, cv := range view.Checklists {
		lists[i] = checklistFromView(cv)
	}

	slog.Debug("ListChecklists successful", "count", len(lists), "acting_user", view.ActingUser)

	return connect.NewResponse(&api.ListChecklistsResponse{
		ActingUser: view.ActingUser,
		Roster:     view.Roster,
		Checklists: lists,
	}), nil
}

// CreateChecklist adds a checklist authored by the acting user.
func (s *ChecklistService) CreateChecklist(ctx context.Context, req *connect.Request[api.CreateChecklistRequest]) (*connect.Response[api.CreateChecklistResponse], error) {
	slog.Info("CreateChecklist request received", "title", req.Msg.Title)

	created, err := s.app.Create(ctx, req.Msg.Title, req.Msg.Details)
	if err != nil {
		slog.Error("CreateChecklist failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.CreateChecklistResponse{
		Checklist: s.checklistFor(ctx, created),
	}), nil
}

// DeleteChecklist removes a checklist. Unknown IDs succeed without change.
func (s *ChecklistService) DeleteChecklist(ctx context.Context, req *connect.Request[api.DeleteChecklistRequest]) (*connect.Response[api.DeleteChecklistResponse], error) {
	slog.Info("DeleteChecklist request received", "checklist_id", req.Msg.ChecklistID)

	if err := s.app.Delete(ctx, req.Msg.ChecklistID); err != nil {
		slog.Error("DeleteChecklist failed", "checklist_id", req.Msg.ChecklistID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.DeleteChecklistResponse{}), nil
}

// SetAnswer records a yes/no answer on one row.
func (s *ChecklistService) SetAnswer(ctx context.Context, req *connect.Request[api.SetAnswerRequest]) (*connect.Response[api.SetAnswerResponse], error) {
	slog.Info("SetAnswer request received",
		"checklist_id", req.Msg.ChecklistID,
		"user", req.Msg.User,
		"answer", req.Msg.Answer,
	)

	updated, err := s.app.SetAnswer(ctx, req.Msg.ChecklistID, req.Msg.User, models.Answer(req.Msg.Answer))
	if err != nil {
		slog.Error("SetAnswer failed", "checklist_id", req.Msg.ChecklistID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.SetAnswerResponse{
		Checklist: s.checklistFor(ctx, updated),
	}), nil
}

// SetNote replaces the note on one row.
func (s *ChecklistService) SetNote(ctx context.Context, req *connect.Request[api.SetNoteRequest]) (*connect.Response[api.SetNoteResponse], error) {
	slog.Info("SetNote request received",
		"checklist_id", req.Msg.ChecklistID,
		"user", req.Msg.User,
		"note_length", len(req.Msg.Note),
	)

	updated, err := s.app.SetNote(ctx, req.Msg.ChecklistID, req.Msg.User, req.Msg.Note)
	if err != nil {
		slog.Error("SetNote failed", "checklist_id", req.Msg.ChecklistID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.SetNoteResponse{
		Checklist: s.checklistFor(ctx, updated),
	}), nil
}

// ImportDocument replaces the document with the uploaded file.
func (s *ChecklistService) ImportDocument(ctx context.Context, req *connect.Request[api.ImportDocumentRequest]) (*connect.Response[api.ImportDocumentResponse], error) {
	slog.Info("ImportDocument request received", "size", len(req.Msg.Content))

	n, err := s.app.Import(ctx, []byte(req.Msg.Content))
	if err != nil {
		slog.Error("ImportDocument failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("ImportDocument successful", "count", n)

	return connect.NewResponse(&api.ImportDocumentResponse{Count: n}), nil
}

// ExportDocument returns the document as pretty-printed JSON.
func (s *ChecklistService) ExportDocument(ctx context.Context, req *connect.Request[api.ExportDocumentRequest]) (*connect.Response[api.ExportDocumentResponse], error) {
	data, err := s.app.Export(ctx)
	if err != nil {
		slog.Error("ExportDocument failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ExportDocumentResponse{
		FileName: app.ExportFileName,
		Content:  string(data),
	}), nil
}

// ClearDocument removes every checklist once confirmed.
func (s *ChecklistService) ClearDocument(ctx context.Context, req *connect.Request[api.ClearDocumentRequest]) (*connect.Response[api.ClearDocumentResponse], error) {
	slog.Info("ClearDocument request received", "confirm", req.Msg.Confirm)

	if err := s.app.Clear(ctx, req.Msg.Confirm); err != nil {
		slog.Error("ClearDocument failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ClearDocumentResponse{}), nil
}

// GetActingUser reports who is acting and who else could.
func (s *ChecklistService) GetActingUser(ctx context.Context, req *connect.Request[api.GetActingUserRequest]) (*connect.Response[api.GetActingUserResponse], error) {
	return connect.NewResponse(&api.GetActingUserResponse{
		User:   s.app.ActingUser(ctx),
		Roster: s.app.Roster().Users(),
	}), nil
}

// SetActingUser stores the acting user preference.
func (s *ChecklistService) SetActingUser(ctx context.Context, req *connect.Request[api.SetActingUserRequest]) (*connect.Response[api.SetActingUserResponse], error) {
	slog.Info("SetActingUser request received", "user", req.Msg.User)

	if err := s.app.SetActingUser(ctx, req.Msg.User); err != nil {
		slog.Error("SetActingUser failed", "user", req.Msg.User, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.SetActingUserResponse{User: req.Msg.User}), nil
}

// checklistFor converts a checklist with capabilities for the acting user.
func (s *ChecklistService) checklistFor(ctx context.Context, c *models.Checklist) *api.Checklist {
	actor := s.app.ActingUser(ctx)

	out := &api.Checklist{
		ID:        c.ID,
		Title:     c.Title,
		Details:   c.Details,
		Creator:   c.Creator,
		Responses: make([]*api.Response, len(c.Responses)),
	}
	for i, r := range c.Responses {
		out.Responses[i] = responseToAPI(r, checklist.IsCreatorRow(c, r), checklist.CapabilityFor(c, r, actor))
	}
	return out
}

func checklistFromView(cv app.ChecklistView) *api.Checklist {
	out := &api.Checklist{
		ID:        cv.ID,
		Title:     cv.Title,
		Details:   cv.Details,
		Creator:   cv.Creator,
		Responses: make([]*api.Response, len(cv.Rows)),
	}
	for i, row := range cv.Rows {
		out.Responses[i] = responseToAPI(row.Response, row.IsCreator, row.Capability)
	}
	return out
}

func responseToAPI(r models.Response, isCreator bool, c checklist.Capability) *api.Response {
	return &api.Response{
		User:       r.User,
		Answer:     string(r.Answer),
		Note:       r.Note,
		IsCreator:  isCreator,
		Capability: c.String(),
		CanAnswer:  c.CanAnswer(),
		CanNote:    c.CanNote(),
	}
}

// toConnectError maps app errors onto Connect codes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, app.ErrEmptyTitle),
		errors.Is(err, app.ErrInvalidAnswer),
		errors.Is(err, app.ErrInvalidFile),
		errors.Is(err, app.ErrParse),
		errors.Is(err, app.ErrDuplicateResponse),
		errors.Is(err, app.ErrDuplicateID),
		errors.Is(err, app.ErrUnknownUser),
		errors.Is(err, app.ErrConfirmationRequired):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, app.ErrChecklistNotFound),
		errors.Is(err, app.ErrResponseNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, app.ErrPermissionDenied):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, app.ErrPersist):
		return connect.NewError(connect.CodeUnavailable, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
