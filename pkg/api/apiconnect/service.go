// Package apiconnect wires checklists.v1.ChecklistService to Connect.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/checklists/pkg/api"
)

// ChecklistServiceName is the fully-qualified name of the ChecklistService service.
const ChecklistServiceName = "checklists.v1.ChecklistService"

// Procedure names of the ChecklistService RPCs.
const (
	ChecklistServiceListChecklistsProcedure  = "/checklists.v1.ChecklistService/ListChecklists"
	ChecklistServiceCreateChecklistProcedure = "/checklists.v1.ChecklistService/CreateChecklist"
	ChecklistServiceDeleteChecklistProcedure = "/checklists.v1.ChecklistService/DeleteChecklist"
	ChecklistServiceSetAnswerProcedure       = "/checklists.v1.ChecklistService/SetAnswer"
	ChecklistServiceSetNoteProcedure         = "/checklists.v1.ChecklistService/SetNote"
	ChecklistServiceImportDocumentProcedure  = "/checklists.v1.ChecklistService/ImportDocument"
	ChecklistServiceExportDocumentProcedure  = "/checklists.v1.ChecklistService/ExportDocument"
	ChecklistServiceClearDocumentProcedure   = "/checklists.v1.ChecklistService/ClearDocument"
	ChecklistServiceGetActingUserProcedure   = "/checklists.v1.ChecklistService/GetActingUser"
	ChecklistServiceSetActingUserProcedure   = "/checklists.v1.ChecklistService/SetActingUser"
)

// ChecklistServiceHandler is implemented by the server.
type ChecklistServiceHandler interface {
	ListChecklists(context.Context, *connect.Request[api.ListChecklistsRequest]) (*connect.Response[api.ListChecklistsResponse], error)
	CreateChecklist(context.Context, *connect.Request[api.CreateChecklistRequest]) (*connect.Response[api.CreateChecklistResponse], error)
	DeleteChecklist(context.Context, *connect.Request[api.DeleteChecklistRequest]) (*connect.Response[api.DeleteChecklistResponse], error)
	SetAnswer(context.Context, *connect.Request[api.SetAnswerRequest]) (*connect.Response[api.SetAnswerResponse], error)
	SetNote(context.Context, *connect.Request[api.SetNoteRequest]) (*connect.Response[api.SetNoteResponse], error)
	ImportDocument(context.Context, *connect.Request[api.ImportDocumentRequest]) (*connect.Response[api.ImportDocumentResponse], error)
	ExportDocument(context.Context, *connect.Request[api.ExportDocumentRequest]) (*connect.Response[api.ExportDocumentResponse], error)
	ClearDocument(context.Context, *connect.Request[api.ClearDocumentRequest]) (*connect.Response[api.ClearDocumentResponse], error)
	GetActingUser(context.Context, *connect.Request[api.GetActingUserRequest]) (*connect.Response[api.GetActingUserResponse], error)
	SetActingUser(context.Context, *connect.Request[api.SetActingUserRequest]) (*connect.Response[api.SetActingUserResponse], error)
}

// NewChecklistServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself. The JSON codec is always installed.
func NewChecklistServiceHandler(svc ChecklistServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	listChecklistsHandler := connect.NewUnaryHandler(ChecklistServiceListChecklistsProcedure, svc.ListChecklists, opts...)
	createChecklistHandler := connect.NewUnaryHandler(ChecklistServiceCreateChecklistProcedure, svc.CreateChecklist, opts...)
	deleteChecklistHandler := connect.NewUnaryHandler(ChecklistServiceDeleteChecklistProcedure, svc.DeleteChecklist, opts...)
	setAnswerHandler := connect.NewUnaryHandler(ChecklistServiceSetAnswerProcedure, svc.SetAnswer, opts...)
	setNoteHandler := connect.NewUnaryHandler(ChecklistServiceSetNoteProcedure, svc.SetNote, opts...)
	importDocumentHandler := connect.NewUnaryHandler(ChecklistServiceImportDocumentProcedure, svc.ImportDocument, opts...)
	exportDocumentHandler := connect.NewUnaryHandler(ChecklistServiceExportDocumentProcedure, svc.ExportDocument, opts...)
	clearDocumentHandler := connect.NewUnaryHandler(ChecklistServiceClearDocumentProcedure, svc.ClearDocument, opts...)
	getActingUserHandler := connect.NewUnaryHandler(ChecklistServiceGetActingUserProcedure, svc.GetActingUser, opts...)
	setActingUserHandler := connect.NewUnaryHandler(ChecklistServiceSetActingUserProcedure, svc.SetActingUser, opts...)

	return "/" + ChecklistServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ChecklistServiceListChecklistsProcedure:
			listChecklistsHandler.ServeHTTP(w, r)
		case ChecklistServiceCreateChecklistProcedure:
			createChecklistHandler.ServeHTTP(w, r)
		case ChecklistServiceDeleteChecklistProcedure:
			deleteChecklistHandler.ServeHTTP(w, r)
		case ChecklistServiceSetAnswerProcedure:
			setAnswerHandler.ServeHTTP(w, r)
		case ChecklistServiceSetNoteProcedure:
			setNoteHandler.ServeHTTP(w, r)
		case ChecklistServiceImportDocumentProcedure:
			importDocumentHandler.ServeHTTP(w, r)
		case ChecklistServiceExportDocumentProcedure:
			exportDocumentHandler.ServeHTTP(w, r)
		case ChecklistServiceClearDocumentProcedure:
			clearDocumentHandler.ServeHTTP(w, r)
		case ChecklistServiceGetActingUserProcedure:
			getActingUserHandler.ServeHTTP(w, r)
		case ChecklistServiceSetActingUserProcedure:
			setActingUserHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedChecklistServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedChecklistServiceHandler struct{}

func (UnimplementedChecklistServiceHandler) ListChecklists(context.Context, *connect.Request[api.ListChecklistsRequest]) (*connect.Response[api.ListChecklistsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("checklists.v1.ChecklistService.ListChecklists is not implemented"))
}

func (UnimplementedChecklistServiceHandler) CreateChecklist(context.Context, *connect.Request[api.CreateChecklistRequest]) (*connect.Response[api.CreateChecklistResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("checklists.v1.ChecklistService.CreateChecklist is not implemented"))
}

func (UnimplementedChecklistServiceHandler) DeleteChecklist(context.Context, *connect.Request[api.DeleteChecklistRequest]) (*connect.Response[api.DeleteChecklistResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("checklists.v1.ChecklistService.DeleteChecklist is not implemented"))
}

func (UnimplementedChecklistServiceHandler) SetAnswer(context.Context, *connect.Request[api.SetAnswerRequest]) (*connect.Response[api.SetAnswerResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("checklists.v1.ChecklistService.SetAnswer is not implemented"))
}

func (UnimplementedChecklistServiceHandler) SetNote(context.Context, *connect.Request[api.SetNoteRequest]) (*connect.Response[api.SetNoteResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("checklists.v1.ChecklistService.SetNote is not implemented"))
}

func (UnimplementedChecklistServiceHandler) ImportDocument(context.Context, *connect.Request[api.ImportDocumentRequest]) (*connect.Response[api.ImportDocumentResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("checklists.v1.ChecklistService.ImportDocument is not implemented"))
}

func (UnimplementedChecklistServiceHandler) ExportDocument(context.Context, *connect.Request[api.ExportDocumentRequest]) (*connect.Response[api.ExportDocumentResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("checklists.v1.ChecklistService.ExportDocument is not implemented"))
}

func (UnimplementedChecklistServiceHandler) ClearDocument(context.Context, *connect.Request[api.ClearDocumentRequest]) (*connect.Response[api.ClearDocumentResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("checklists.v1.ChecklistService.ClearDocument is not implemented"))
}

func (UnimplementedChecklistServiceHandler) GetActingUser(context.Context, *connect.Request[api.GetActingUserRequest]) (*connect.Response[api.GetActingUserResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("checklists.v1.ChecklistService.GetActingUser is not implemented"))
}

func (UnimplementedChecklistServiceHandler) SetActingUser(context.Context, *connect.Request[api.SetActingUserRequest]) (*connect.Response[api.SetActingUserResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("checklists.v1.ChecklistService.SetActingUser is not implemented"))
}

// ChecklistServiceClient is a client for the checklists.v1.ChecklistService service.
type ChecklistServiceClient interface {
	ListChecklists(context.Context, *connect.Request[api.ListChecklistsRequest]) (*connect.Response[api.ListChecklistsResponse], error)
	CreateChecklist(context.Context, *connect.Request[api.CreateChecklistRequest]) (*connect.Response[api.CreateChecklistResponse], error)
	DeleteChecklist(context.Context, *connect.Request[api.DeleteChecklistRequest]) (*connect.Response[api.DeleteChecklistResponse], error)
	SetAnswer(context.Context, *connect.Request[api.SetAnswerRequest]) (*connect.Response[api.SetAnswerResponse], error)
	SetNote(context.Context, *connect.Request[api.SetNoteRequest]) (*connect.Response[api.SetNoteResponse], error)
	ImportDocument(context.Context, *connect.Request[api.ImportDocumentRequest]) (*connect.Response[api.ImportDocumentResponse], error)
	ExportDocument(context.Context, *connect.Request[api.ExportDocumentRequest]) (*connect.Response[api.ExportDocumentResponse], error)
	ClearDocument(context.Context, *connect.Request[api.ClearDocumentRequest]) (*connect.Response[api.ClearDocumentResponse], error)
	GetActingUser(context.Context, *connect.Request[api.GetActingUserRequest]) (*connect.Response[api.GetActingUserResponse], error)
	SetActingUser(context.Context, *connect.Request[api.SetActingUserRequest]) (*connect.Response[api.SetActingUserResponse], error)
}

// NewChecklistServiceClient constructs a client for the ChecklistService.
// baseURL is the server root, e.g. http://localhost:8080.
func NewChecklistServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ChecklistServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &checklistServiceClient{
		listChecklists: connect.NewClient[api.ListChecklistsRequest, api.ListChecklistsResponse](
			httpClient,
			baseURL+ChecklistServiceListChecklistsProcedure,
			opts...,
		),
		createChecklist: connect.NewClient[api.CreateChecklistRequest, api.CreateChecklistResponse](
			httpClient,
			baseURL+ChecklistServiceCreateChecklistProcedure,
			opts...,
		),
		deleteChecklist: connect.NewClient[api.DeleteChecklistRequest, api.DeleteChecklistResponse](
			httpClient,
			baseURL+ChecklistServiceDeleteChecklistProcedure,
			opts...,
		),
		setAnswer: connect.NewClient[api.SetAnswerRequest, api.SetAnswerResponse](
			httpClient,
			baseURL+ChecklistServiceSetAnswerProcedure,
			opts...,
		),
		setNote: connect.NewClient[api.SetNoteRequest, api.SetNoteResponse](
			httpClient,
			baseURL+ChecklistServiceSetNoteProcedure,
			opts...,
		),
		importDocument: connect.NewClient[api.ImportDocumentRequest, api.ImportDocumentResponse](
			httpClient,
			baseURL+ChecklistServiceImportDocumentProcedure,
			opts...,
		),
		exportDocument: connect.NewClient[api.ExportDocumentRequest, api.ExportDocumentResponse](
			httpClient,
			baseURL+ChecklistServiceExportDocumentProcedure,
			opts...,
		),
		clearDocument: connect.NewClient[api.ClearDocumentRequest, api.ClearDocumentResponse](
			httpClient,
			baseURL+ChecklistServiceClearDocumentProcedure,
			opts...,
		),
		getActingUser: connect.NewClient[api.GetActingUserRequest, api.GetActingUserResponse](
			httpClient,
			baseURL+ChecklistServiceGetActingUserProcedure,
			opts...,
		),
		setActingUser: connect.NewClient[api.SetActingUserRequest, api.SetActingUserResponse](
			httpClient,
			baseURL+ChecklistServiceSetActingUserProcedure,
			opts...,
		),
	}
}

// checklistServiceClient implements ChecklistServiceClient.
type checklistServiceClient struct {
	listChecklists  *connect.Client[api.ListChecklistsRequest, api.ListChecklistsResponse]
	createChecklist *connect.Client[api.CreateChecklistRequest, api.CreateChecklistResponse]
	deleteChecklist *connect.Client[api.DeleteChecklistRequest, api.DeleteChecklistResponse]
	setAnswer       *connect.Client[api.SetAnswerRequest, api.SetAnswerResponse]
	setNote         *connect.Client[api.SetNoteRequest, api.SetNoteResponse]
	importDocument  *connect.Client[api.ImportDocumentRequest, api.ImportDocumentResponse]
	exportDocument  *connect.Client[api.ExportDocumentRequest, api.ExportDocumentResponse]
	clearDocument   *connect.Client[api.ClearDocumentRequest, api.ClearDocumentResponse]
	getActingUser   *connect.Client[api.GetActingUserRequest, api.GetActingUserResponse]
	setActingUser   *connect.Client[api.SetActingUserRequest, api.SetActingUserResponse]
}

// ListChecklists calls checklists.v1.ChecklistService.ListChecklists.
func (c *checklistServiceClient) ListChecklists(ctx context.Context, req *connect.Request[api.ListChecklistsRequest]) (*connect.Response[api.ListChecklistsResponse], error) {
	return c.listChecklists.CallUnary(ctx, req)
}

// CreateChecklist calls checklists.v1.ChecklistService.CreateChecklist.
func (c *checklistServiceClient) CreateChecklist(ctx context.Context, req *connect.Request[api.CreateChecklistRequest]) (*connect.Response[api.CreateChecklistResponse], error) {
	return c.createChecklist.CallUnary(ctx, req)
}

// DeleteChecklist calls checklists.v1.ChecklistService.DeleteChecklist.
func (c *checklistServiceClient) DeleteChecklist(ctx context.Context, req *connect.Request[api.DeleteChecklistRequest]) (*connect.Response[api.DeleteChecklistResponse], error) {
	return c.deleteChecklist.CallUnary(ctx, req)
}

// SetAnswer calls checklists.v1.ChecklistService.SetAnswer.
func (c *checklistServiceClient) SetAnswer(ctx context.Context, req *connect.Request[api.SetAnswerRequest]) (*connect.Response[api.SetAnswerResponse], error) {
	return c.setAnswer.CallUnary(ctx, req)
}

// SetNote calls checklists.v1.ChecklistService.SetNote.
func (c *checklistServiceClient) SetNote(ctx context.Context, req *connect.Request[api.SetNoteRequest]) (*connect.Response[api.SetNoteResponse], error) {
	return c.setNote.CallUnary(ctx, req)
}

// ImportDocument calls checklists.v1.ChecklistService.ImportDocument.
func (c *checklistServiceClient) ImportDocument(ctx context.Context, req *connect.Request[api.ImportDocumentRequest]) (*connect.Response[api.ImportDocumentResponse], error) {
	return c.importDocument.CallUnary(ctx, req)
}

// ExportDocument calls checklists.v1.ChecklistService.ExportDocument.
func (c *checklistServiceClient) ExportDocument(ctx context.Context, req *connect.Request[api.ExportDocumentRequest]) (*connect.Response[api.ExportDocumentResponse], error) {
	return c.exportDocument.CallUnary(ctx, req)
}

// ClearDocument calls checklists.v1.ChecklistService.ClearDocument.
func (c *checklistServiceClient) ClearDocument(ctx context.Context, req *connect.Request[api.ClearDocumentRequest]) (*connect.Response[api.ClearDocumentResponse], error) {
	return c.clearDocument.CallUnary(ctx, req)
}

// GetActingUser calls checklists.v1.ChecklistService.GetActingUser.
func (c *checklistServiceClient) GetActingUser(ctx context.Context, req *connect.Request[api.GetActingUserRequest]) (*connect.Response[api.GetActingUserResponse], error) {
	return c.getActingUser.CallUnary(ctx, req)
}

// SetActingUser calls checklists.v1.ChecklistService.SetActingUser.
func (c *checklistServiceClient) SetActingUser(ctx context.Context, req *connect.Request[api.SetActingUserRequest]) (*connect.Response[api.SetActingUserResponse], error) {
	return c.setActingUser.CallUnary(ctx, req)
}
