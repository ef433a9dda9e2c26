package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/mmynk/checklists/internal/checklist"
	"github.com/mmynk/checklists/internal/models"
	"github.com/mmynk/checklists/internal/storage"
	"github.com/mmynk/checklists/pkg/requestcontext"
)

// memGateway keeps the last saved document as JSON, like the local cache.
type memGateway struct {
	mu      sync.Mutex
	saved   []byte
	saves   int
	failErr error
}

func (g *memGateway) Load(ctx context.Context) (*models.Document, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.saved == nil {
		return &models.Document{Lists: []*models.Checklist{}}, "empty"
	}
	var doc models.Document
	if err := json.Unmarshal(g.saved, &doc); err != nil {
		panic(err)
	}
	return &doc, "local"
}

func (g *memGateway) Save(ctx context.Context, doc *models.Document) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failErr != nil {
		return g.failErr
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	g.saved = data
	g.saves++
	return nil
}

type memPrefs struct {
	mu     sync.Mutex
	values map[string]string
}

func (p *memPrefs) GetPreference(ctx context.Context, key string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.values[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

func (p *memPrefs) SetPreference(ctx context.Context, key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.values == nil {
		p.values = map[string]string{}
	}
	p.values[key] = value
	return nil
}

func setupApp(t *testing.T) (*App, *memGateway, *memPrefs) {
	t.Helper()
	roster, err := models.NewRoster("JH", "JM", "KH")
	if err != nil {
		t.Fatalf("NewRoster failed: %v", err)
	}
	gw := &memGateway{}
	prefs := &memPrefs{}
	return Open(context.Background(), roster, gw, prefs, nil), gw, prefs
}

func as(user string) context.Context {
	return requestcontext.WithActingUser(context.Background(), user)
}

func rowFor(t *testing.T, v View, id, user string) RowView {
	t.Helper()
	for _, c := range v.Checklists {
		if c.ID != id {
			continue
		}
		for _, r := range c.Rows {
			if r.User == user {
				return r
			}
		}
	}
	t.Fatalf("row %s on %s not found", user, id)
	return RowView{}
}

func TestOpen_SavesNormalizedDocument(t *testing.T) {
	_, gw, _ := setupApp(t)
	if gw.saves != 1 {
		t.Errorf("expected one save after open, got %d", gw.saves)
	}
}

func TestActingUser(t *testing.T) {
	a, _, _ := setupApp(t)
	ctx := context.Background()

	if got := a.ActingUser(ctx); got != "JH" {
		t.Errorf("default acting user = %q, want JH", got)
	}

	if err := a.SetActingUser(ctx, "KH"); err != nil {
		t.Fatalf("SetActingUser failed: %v", err)
	}
	if got := a.ActingUser(ctx); got != "KH" {
		t.Errorf("acting user = %q, want KH", got)
	}

	if got := a.ActingUser(as("JM")); got != "JM" {
		t.Errorf("override acting user = %q, want JM", got)
	}

	if err := a.SetActingUser(ctx, "ZZ"); !errors.Is(err, ErrUnknownUser) {
		t.Errorf("expected ErrUnknownUser, got %v", err)
	}
	if got := a.ActingUser(ctx); got != "KH" {
		t.Errorf("rejected change altered acting user to %q", got)
	}
}

func TestCreate(t *testing.T) {
	a, gw, _ := setupApp(t)

	created, err := a.Create(as("JH"), "  Trip?  ", "Lake house in May")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if !strings.HasPrefix(created.ID, "l_") {
		t.Errorf("unexpected id %q", created.ID)
	}
	if created.Title != "Trip?" {
		t.Errorf("title = %q, want trimmed", created.Title)
	}
	if created.Creator != "JH" {
		t.Errorf("creator = %q, want JH", created.Creator)
	}
	want := []models.Response{{User: "JH"}, {User: "JM"}, {User: "KH"}}
	if fmt.Sprint(created.Responses) != fmt.Sprint(want) {
		t.Errorf("responses = %+v, want %+v", created.Responses, want)
	}
	if gw.saves != 2 {
		t.Errorf("expected create to save, saves = %d", gw.saves)
	}
}

func TestCreate_NewestFirst(t *testing.T) {
	a, _, _ := setupApp(t)

	first, err := a.Create(as("JH"), "first", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := a.Create(as("JM"), "second", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	v := a.View(as("JH"))
	if len(v.Checklists) != 2 || v.Checklists[0].ID != second.ID || v.Checklists[1].ID != first.ID {
		t.Errorf("expected newest first, got %+v", v.Checklists)
	}
}

func TestCreate_Rejected(t *testing.T) {
	a, gw, _ := setupApp(t)

	if _, err := a.Create(as("JH"), "   ", "details"); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}
	if _, err := a.Create(as("ZZ"), "Trip?", ""); !errors.Is(err, ErrUnknownUser) {
		t.Errorf("expected ErrUnknownUser, got %v", err)
	}

	if n := len(a.View(as("JH")).Checklists); n != 0 {
		t.Errorf("lists length changed to %d", n)
	}
	if gw.saves != 1 {
		t.Errorf("rejected create was persisted, saves = %d", gw.saves)
	}
}

func TestRespondScenario(t *testing.T) {
	a, gw, prefs := setupApp(t)

	list, err := a.Create(as("JH"), "Trip?", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := a.SetAnswer(as("JM"), list.ID, "JM", models.AnswerYes); err != nil {
		t.Fatalf("SetAnswer failed: %v", err)
	}
	if _, err := a.SetNote(as("JM"), list.ID, "JM", "sure"); err != nil {
		t.Fatalf("SetNote failed: %v", err)
	}

	// Reload from what was persisted.
	reloaded := Open(context.Background(), a.Roster(), gw, prefs, nil)

	t.Run("creator row", func(t *testing.T) {
		asJH := rowFor(t, reloaded.View(as("JH")), list.ID, "JH")
		if !asJH.IsCreator || asJH.Capability != checklist.CapabilityNoteOnly {
			t.Errorf("JH on own row: %+v, want creator note-only", asJH)
		}
		asKH := rowFor(t, reloaded.View(as("KH")), list.ID, "JH")
		if asKH.Capability != checklist.CapabilityNone {
			t.Errorf("KH on JH row: %v, want none", asKH.Capability)
		}
	})

	t.Run("responder row", func(t *testing.T) {
		asKH := rowFor(t, reloaded.View(as("KH")), list.ID, "JM")
		if asKH.Answer != models.AnswerYes || asKH.Note != "sure" {
			t.Errorf("JM row = %+v, want yes/sure", asKH.Response)
		}
		if asKH.Capability != checklist.CapabilityNone {
			t.Errorf("KH on JM row: %v, want none", asKH.Capability)
		}
		asJM := rowFor(t, reloaded.View(as("JM")), list.ID, "JM")
		if asJM.Capability != checklist.CapabilityAnswerAndNote {
			t.Errorf("JM on own row: %v, want answer and note", asJM.Capability)
		}
	})
}

func TestSetAnswer_Permissions(t *testing.T) {
	a, _, _ := setupApp(t)
	list, err := a.Create(as("JH"), "Trip?", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	tests := []struct {
		name    string
		actor   string
		id      string
		user    string
		answer  models.Answer
		wantErr error
	}{
		{name: "creator cannot answer own checklist", actor: "JH", id: list.ID, user: "JH", answer: models.AnswerYes, wantErr: ErrPermissionDenied},
		{name: "cannot answer for someone else", actor: "KH", id: list.ID, user: "JM", answer: models.AnswerNo, wantErr: ErrPermissionDenied},
		{name: "viewer outside roster", actor: "ZZ", id: list.ID, user: "JM", answer: models.AnswerNo, wantErr: ErrPermissionDenied},
		{name: "unknown checklist", actor: "JM", id: "l_missing", user: "JM", answer: models.AnswerYes, wantErr: ErrChecklistNotFound},
		{name: "unknown row", actor: "JM", id: list.ID, user: "ZZ", answer: models.AnswerYes, wantErr: ErrResponseNotFound},
		{name: "unanswered is not settable", actor: "JM", id: list.ID, user: "JM", answer: models.AnswerNone, wantErr: ErrInvalidAnswer},
		{name: "arbitrary answer", actor: "JM", id: list.ID, user: "JM", answer: "maybe", wantErr: ErrInvalidAnswer},
		{name: "responder answers", actor: "KH", id: list.ID, user: "KH", answer: models.AnswerNo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.SetAnswer(as(tt.actor), tt.id, tt.user, tt.answer)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("SetAnswer failed: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if got := rowFor(t, a.View(as("JH")), list.ID, "JH").Answer; got != models.AnswerNone {
		t.Errorf("creator row answer changed to %q", got)
	}
	if got := rowFor(t, a.View(as("JH")), list.ID, "KH").Answer; got != models.AnswerNo {
		t.Errorf("KH answer = %q, want no", got)
	}
}

func TestSetNote_Permissions(t *testing.T) {
	a, _, _ := setupApp(t)
	list, err := a.Create(as("JH"), "Trip?", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := a.SetNote(as("JH"), list.ID, "JH", "I'll drive"); err != nil {
		t.Errorf("creator note failed: %v", err)
	}
	if _, err := a.SetNote(as("JM"), list.ID, "JH", "hijack"); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}

	if got := rowFor(t, a.View(as("KH")), list.ID, "JH").Note; got != "I'll drive" {
		t.Errorf("creator note = %q", got)
	}
}

func TestLegacyChecklistWithoutCreator(t *testing.T) {
	a, _, _ := setupApp(t)
	if _, err := a.Import(context.Background(), []byte(`{"lists":[{"id":"l_old","title":"Old","responses":[{"user":"JH","answer":null,"note":""}]}]}`)); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if _, err := a.SetAnswer(as("JH"), "l_old", "JH", models.AnswerYes); err != nil {
		t.Errorf("expected JH to answer a list without creator: %v", err)
	}
	row := rowFor(t, a.View(as("KH")), "l_old", "KH")
	if row.IsCreator || row.Capability != checklist.CapabilityAnswerAndNote {
		t.Errorf("KH row on legacy list = %+v", row)
	}
}

func TestDelete(t *testing.T) {
	a, gw, _ := setupApp(t)
	list, err := a.Create(as("JH"), "Trip?", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := a.Delete(context.Background(), "l_missing"); err != nil {
		t.Errorf("deleting an unknown id should be a no-op, got %v", err)
	}
	saves := gw.saves

	if err := a.Delete(context.Background(), list.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n := len(a.View(as("JH")).Checklists); n != 0 {
		t.Errorf("expected no lists, got %d", n)
	}
	if gw.saves != saves+1 {
		t.Errorf("expected delete to save")
	}
}

func TestImport(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
		wantLen int
	}{
		{name: "empty lists clears prior state", data: `{"lists":[]}`, wantLen: 0},
		{name: "lists are reconciled", data: `{"lists":[{"id":"l_1","title":"A","creator":"JM"},{"title":"no id"}]}`, wantLen: 2},
		{name: "missing lists", data: `{}`, wantErr: ErrInvalidFile},
		{name: "null lists", data: `{"lists":null}`, wantErr: ErrInvalidFile},
		{name: "lists not an array", data: `{"lists":{"a":1}}`, wantErr: ErrInvalidFile},
		{name: "top level array", data: `[]`, wantErr: ErrInvalidFile},
		{name: "bad answer", data: `{"lists":[{"id":"l_1","responses":[{"user":"JH","answer":"maybe"}]}]}`, wantErr: ErrInvalidFile},
		{name: "not json", data: `lists: []`, wantErr: ErrParse},
		{name: "duplicate rows", data: `{"lists":[{"id":"l_1","responses":[{"user":"JH"},{"user":"JH"}]}]}`, wantErr: ErrDuplicateResponse},
		{name: "duplicate ids", data: `{"lists":[{"id":"x","title":"A"},{"id":"x","title":"B"}]}`, wantErr: ErrDuplicateID},
		{name: "several lists without id", data: `{"lists":[{"title":"A"},{"title":"B"}]}`, wantLen: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, _ := setupApp(t)
			if _, err := a.Create(as("JH"), "existing", ""); err != nil {
				t.Fatalf("Create failed: %v", err)
			}

			n, err := a.Import(context.Background(), []byte(tt.data))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if got := len(a.View(as("JH")).Checklists); got != 1 {
					t.Errorf("rejected import changed state: %d lists", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Import failed: %v", err)
			}
			if n != tt.wantLen {
				t.Errorf("imported %d lists, want %d", n, tt.wantLen)
			}
			v := a.View(as("JH"))
			if len(v.Checklists) != tt.wantLen {
				t.Fatalf("view has %d lists, want %d", len(v.Checklists), tt.wantLen)
			}
			for _, c := range v.Checklists {
				if c.ID == "" || len(c.Rows) != 3 {
					t.Errorf("checklist not reconciled: %+v", c)
				}
			}
		})
	}
}

func TestExport(t *testing.T) {
	a, _, _ := setupApp(t)
	if _, err := a.Create(as("JH"), "Trip & <fun>?", ""); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	data, err := a.Export(context.Background())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(string(data), "\n  \"lists\": [") {
		t.Errorf("expected pretty-printed output, got %s", data)
	}
	if !strings.Contains(string(data), `"title": "Trip & <fun>?"`) {
		t.Errorf("expected title written verbatim, got %s", data)
	}
	if strings.HasSuffix(string(data), "\n") {
		t.Error("export should not end with a newline")
	}

	// An export can be imported back unchanged.
	b, _, _ := setupApp(t)
	if _, err := b.Import(context.Background(), data); err != nil {
		t.Fatalf("Import of export failed: %v", err)
	}
	again, err := b.Export(context.Background())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if string(again) != string(data) {
		t.Errorf("export is not stable:\n%s\n---\n%s", data, again)
	}
}

func TestClear(t *testing.T) {
	a, _, _ := setupApp(t)
	if _, err := a.Create(as("JH"), "Trip?", ""); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := a.Clear(context.Background(), false); !errors.Is(err, ErrConfirmationRequired) {
		t.Errorf("expected ErrConfirmationRequired, got %v", err)
	}
	if n := len(a.View(as("JH")).Checklists); n != 1 {
		t.Errorf("unconfirmed clear removed lists")
	}

	if err := a.Clear(context.Background(), true); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if n := len(a.View(as("JH")).Checklists); n != 0 {
		t.Errorf("expected no lists after clear, got %d", n)
	}
}

func TestPersistFailure(t *testing.T) {
	a, gw, _ := setupApp(t)
	kept, err := a.Create(as("JH"), "Kept", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := a.SetAnswer(as("JM"), kept.ID, "JM", models.AnswerYes); err != nil {
		t.Fatalf("SetAnswer failed: %v", err)
	}
	if _, err := a.SetNote(as("JM"), kept.ID, "JM", "sure"); err != nil {
		t.Fatalf("SetNote failed: %v", err)
	}
	before := a.View(as("JH"))
	savesBefore := gw.saves

	gw.failErr = errors.New("disk full")

	tests := []struct {
		name string
		run  func() error
	}{
		{name: "create", run: func() error {
			_, err := a.Create(as("JH"), "Trip?", "")
			return err
		}},
		{name: "delete", run: func() error {
			return a.Delete(context.Background(), kept.ID)
		}},
		{name: "answer", run: func() error {
			_, err := a.SetAnswer(as("JM"), kept.ID, "JM", models.AnswerNo)
			return err
		}},
		{name: "note", run: func() error {
			_, err := a.SetNote(as("JM"), kept.ID, "JM", "changed my mind")
			return err
		}},
		{name: "clear", run: func() error {
			return a.Clear(context.Background(), true)
		}},
		{name: "import", run: func() error {
			_, err := a.Import(context.Background(), []byte(`{"lists":[]}`))
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, ErrPersist) {
				t.Fatalf("expected ErrPersist, got %v", err)
			}
			after := a.View(as("JH"))
			if !reflect.DeepEqual(before, after) {
				t.Errorf("failed %s changed state:\nbefore %+v\nafter  %+v", tt.name, before, after)
			}
		})
	}

	if gw.saves != savesBefore {
		t.Errorf("expected no successful saves, got %d", gw.saves-savesBefore)
	}

	// Once the cache recovers, nothing from the failed calls resurfaces.
	gw.failErr = nil
	if _, err := a.Create(as("KH"), "After", ""); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	v := a.View(as("JH"))
	if len(v.Checklists) != 2 {
		t.Fatalf("expected 2 lists, got %d", len(v.Checklists))
	}
	row := rowFor(t, v, kept.ID, "JM")
	if row.Answer != models.AnswerYes || row.Note != "sure" {
		t.Errorf("expected JM row yes/sure, got %q/%q", row.Answer, row.Note)
	}
}
