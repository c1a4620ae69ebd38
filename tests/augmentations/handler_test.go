package augmentations_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sarifworks/augments/internal/augmentations"
	"github.com/sarifworks/augments/pkg/pagination"
)

type mockSystem struct {
	listFn   func(ctx context.Context, q augmentations.Query) ([]augmentations.Augmentation, error)
	findFn   func(ctx context.Context, id int) (*augmentations.Augmentation, error)
	createFn func(ctx context.Context, cmd augmentations.CreateCommand) (*augmentations.Augmentation, error)
	updateFn func(ctx context.Context, id int, cmd augmentations.CreateCommand) (*augmentations.Augmentation, error)
	patchFn  func(ctx context.Context, id int, ops []augmentations.PatchOp) (*augmentations.Augmentation, error)
	deleteFn func(ctx context.Context, id int) error
	importFn func(ctx context.Context, cmds []augmentations.CreateCommand) ([]augmentations.Augmentation, error)
	exportFn func(ctx context.Context, q augmentations.Query) ([]byte, error)
}

func (m *mockSystem) Handler() *augmentations.Handler {
	return newTestHandler(m)
}

func (m *mockSystem) List(ctx context.Context, q augmentations.Query) ([]augmentations.Augmentation, error) {
	return m.listFn(ctx, q)
}

func (m *mockSystem) Find(ctx context.Context, id int) (*augmentations.Augmentation, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Create(ctx context.Context, cmd augmentations.CreateCommand) (*augmentations.Augmentation, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockSystem) Update(ctx context.Context, id int, cmd augmentations.CreateCommand) (*augmentations.Augmentation, error) {
	return m.updateFn(ctx, id, cmd)
}

func (m *mockSystem) Patch(ctx context.Context, id int, ops []augmentations.PatchOp) (*augmentations.Augmentation, error) {
	return m.patchFn(ctx, id, ops)
}

func (m *mockSystem) Delete(ctx context.Context, id int) error {
	return m.deleteFn(ctx, id)
}

func (m *mockSystem) Import(ctx context.Context, cmds []augmentations.CreateCommand) ([]augmentations.Augmentation, error) {
	return m.importFn(ctx, cmds)
}

func (m *mockSystem) Export(ctx context.Context, q augmentations.Query) ([]byte, error) {
	return m.exportFn(ctx, q)
}

func newTestHandler(sys augmentations.System) *augmentations.Handler {
	return augmentations.NewHandler(
		sys,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 50, MaxPageSize: 50},
		testPresenter(),
		1<<20,
	)
}

func setupMux(h *augmentations.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func TestHandlerList(t *testing.T) {
	sys := &mockSystem{
		listFn: func(_ context.Context, q augmentations.Query) ([]augmentations.Augmentation, error) {
			return augmentations.Listing(catalog(), q), nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	t.Run("returns resources with links", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var resources []augmentations.Resource
		if err := json.Unmarshal(rec.Body.Bytes(), &resources); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if len(resources) != 6 {
			t.Fatalf("count = %d, want 6", len(resources))
		}
		if len(resources[0].Links) != 5 {
			t.Errorf("link count = %d, want 5", len(resources[0].Links))
		}
	})

	t.Run("rejects oversized page size", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/?pageSize=51", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("rejects unknown filter value", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/?area=Tail", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("applies search and paging", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/?searchTerm=System&pageNumber=2&pageSize=1", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var resources []augmentations.Resource
		if err := json.Unmarshal(rec.Body.Bytes(), &resources); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if len(resources) != 1 || resources[0].ID != 6 {
			t.Errorf("unexpected page: %+v", resources)
		}
	})
}

func TestHandlerFind(t *testing.T) {
	sys := &mockSystem{
		findFn: func(_ context.Context, id int) (*augmentations.Augmentation, error) {
			if id != 3 {
				return nil, augmentations.ErrNotFound
			}
			aug := catalog()[2]
			return &aug, nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	t.Run("found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/3", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var resource augmentations.Resource
		if err := json.Unmarshal(rec.Body.Bytes(), &resource); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if resource.Name != "Aqualung" {
			t.Errorf("Name = %q", resource.Name)
		}
	})

	t.Run("missing record", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/99", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/abc", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandlerCreate(t *testing.T) {
	sys := &mockSystem{
		createFn: func(_ context.Context, cmd augmentations.CreateCommand) (*augmentations.Augmentation, error) {
			if err := cmd.Validate(); err != nil {
				return nil, err
			}
			return &augmentations.Augmentation{
				ID:                7,
				Type:              augmentations.Type(cmd.Type),
				Area:              augmentations.Area(cmd.Area),
				Name:              cmd.Name,
				Description:       cmd.Description,
				Activation:        augmentations.Activation(cmd.Activation),
				EnergyConsumption: augmentations.EnergyConsumption(cmd.EnergyConsumption),
			}, nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	t.Run("created with location header", func(t *testing.T) {
		body, _ := json.Marshal(validCommand())
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "http://api.example.com/", bytes.NewReader(body))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "http://api.example.com/augmentations/7" {
			t.Errorf("Location = %q", loc)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/", strings.NewReader("{not json"))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("invalid fields", func(t *testing.T) {
		cmd := validCommand()
		cmd.Area = "Tail"
		body, _ := json.Marshal(cmd)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/", bytes.NewReader(body))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", rec.Code)
		}

		var payload map[string]map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if _, ok := payload["errors"]["area"]; !ok {
			t.Errorf("payload missing area error: %v", payload)
		}
	})
}

func TestHandlerDelete(t *testing.T) {
	sys := &mockSystem{
		deleteFn: func(_ context.Context, id int) error {
			if id != 3 {
				return augmentations.ErrNotFound
			}
			return nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/3", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestHandlerOptions(t *testing.T) {
	mux := setupMux(newTestHandler(&mockSystem{}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	allow := rec.Header().Get("Allow")
	for _, method := range []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"} {
		if !strings.Contains(allow, method) {
			t.Errorf("Allow %q missing %s", allow, method)
		}
	}
}

func TestHandlerExport(t *testing.T) {
	sys := &mockSystem{
		exportFn: func(_ context.Context, q augmentations.Query) ([]byte, error) {
			items := augmentations.Listing(catalog(), q)
			var buf bytes.Buffer
			if err := augmentations.WritePDF(&buf, items); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	t.Run("streams pdf", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/pdf", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("content-type = %q", ct)
		}
		if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
			t.Error("body does not start with %PDF")
		}
	})

	t.Run("pipeline runs before rendering", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/pdf?searchTerm=Aqualung", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
			t.Error("body does not start with %PDF")
		}
	})

	t.Run("empty result", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/pdf?searchTerm=nothing-matches", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("rejects invalid paging", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/pdf?pageSize=51", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func csvUpload(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := io.WriteString(part, content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	writer.Close()

	return &buf, writer.FormDataContentType()
}

func TestHandlerImport(t *testing.T) {
	doc := csvHeader +
		"Mechanical,Back,Icarus Landing System,Micro-jets soften falls.,Contextual,Medium\n"

	t.Run("imports batch", func(t *testing.T) {
		sys := &mockSystem{
			importFn: func(_ context.Context, cmds []augmentations.CreateCommand) ([]augmentations.Augmentation, error) {
				if len(cmds) != 1 {
					t.Fatalf("command count = %d, want 1", len(cmds))
				}
				return []augmentations.Augmentation{{ID: 7, Name: cmds[0].Name}}, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		body, contentType := csvUpload(t, "augs.csv", doc)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/csv", body)
		req.Header.Set("Content-Type", contentType)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("rejects non-csv extension", func(t *testing.T) {
		mux := setupMux(newTestHandler(&mockSystem{}))

		body, contentType := csvUpload(t, "augs.txt", doc)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/csv", body)
		req.Header.Set("Content-Type", contentType)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("reports failing row", func(t *testing.T) {
		mux := setupMux(newTestHandler(&mockSystem{}))

		bad := csvHeader + "Mechanical,Tail,Bad Row,Unknown area.,Manual,Low\n"
		body, contentType := csvUpload(t, "augs.csv", bad)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/csv", body)
		req.Header.Set("Content-Type", contentType)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", rec.Code)
		}

		var payload map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if payload["row"] != float64(1) {
			t.Errorf("row = %v, want 1", payload["row"])
		}
	})
}
