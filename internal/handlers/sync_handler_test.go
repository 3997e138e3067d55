package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "financehub/internal/errors"
	"financehub/internal/services"
	"financehub/internal/syncer"
)

// --- mock export service ---

type mockExportService struct {
	exportFn    func() (map[string]json.RawMessage, error)
	importFn    func(envelope map[string]json.RawMessage) error
	importKeyFn func(key string, value json.RawMessage) error
	clearAllFn  func() error
}

func (m *mockExportService) Export() (map[string]json.RawMessage, error) {
	if m.exportFn != nil {
		return m.exportFn()
	}
	return map[string]json.RawMessage{}, nil
}

func (m *mockExportService) Import(envelope map[string]json.RawMessage) error {
	if m.importFn != nil {
		return m.importFn(envelope)
	}
	return nil
}

func (m *mockExportService) ImportKey(key string, value json.RawMessage) error {
	if m.importKeyFn != nil {
		return m.importKeyFn(key, value)
	}
	return nil
}

func (m *mockExportService) ClearAll() error {
	if m.clearAllFn != nil {
		return m.clearAllFn()
	}
	return nil
}

var _ services.ExportServicer = (*mockExportService)(nil)

// stubRemote is a minimal in-memory remote for wiring a real syncer.
type stubRemote struct {
	data     map[string]json.RawMessage
	fetchErr error
}

func (s *stubRemote) FetchAll(context.Context) (map[string]json.RawMessage, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.data, nil
}

func (s *stubRemote) Put(_ context.Context, key string, value json.RawMessage) error {
	if s.data == nil {
		s.data = make(map[string]json.RawMessage)
	}
	s.data[key] = value
	return nil
}

func setupSyncRouter(handler *SyncHandler) *gin.Engine {
	r := gin.New()
	r.GET("/sync/export", handler.Export)
	r.POST("/sync/import", handler.Import)
	r.POST("/sync/clear", handler.ClearAll)
	r.POST("/sync/push", handler.Push)
	r.POST("/sync/pull", handler.Pull)
	return r
}

func TestSyncHandler_Export(t *testing.T) {
	t.Run("returns the envelope directly", func(t *testing.T) {
		exportSvc := &mockExportService{
			exportFn: func() (map[string]json.RawMessage, error) {
				return map[string]json.RawMessage{
					"transactions": json.RawMessage(`[{"id":"t1"}]`),
					"cards":        json.RawMessage(`[]`),
				}, nil
			},
		}
		r := setupSyncRouter(NewSyncHandler(exportSvc, nil))

		rec := doRequest(r, "GET", "/sync/export", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if _, ok := result["transactions"]; !ok {
			t.Errorf("expected transactions collection at the top level, got %v", result)
		}
	})
}

func TestSyncHandler_Import(t *testing.T) {
	t.Run("passes the envelope through", func(t *testing.T) {
		var captured map[string]json.RawMessage
		exportSvc := &mockExportService{
			importFn: func(envelope map[string]json.RawMessage) error {
				captured = envelope
				return nil
			},
		}
		r := setupSyncRouter(NewSyncHandler(exportSvc, nil))

		rec := doRequest(r, "POST", "/sync/import", `{"transactions":[{"id":"t1"}]}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if _, ok := captured["transactions"]; !ok {
			t.Error("expected transactions key to reach the service")
		}
	})

	t.Run("returns 400 on non-object body", func(t *testing.T) {
		r := setupSyncRouter(NewSyncHandler(&mockExportService{}, nil))

		rec := doRequest(r, "POST", "/sync/import", `"not an envelope"`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_ENVELOPE")
	})

	t.Run("propagates malformed collection errors", func(t *testing.T) {
		exportSvc := &mockExportService{
			importFn: func(map[string]json.RawMessage) error {
				return apperrors.ErrInvalidEnvelope
			},
		}
		r := setupSyncRouter(NewSyncHandler(exportSvc, nil))

		rec := doRequest(r, "POST", "/sync/import", `{"transactions":"not an array"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestSyncHandler_PushPull(t *testing.T) {
	t.Run("push and pull report disabled without a remote", func(t *testing.T) {
		r := setupSyncRouter(NewSyncHandler(&mockExportService{}, nil))

		rec := doRequest(r, "POST", "/sync/push", "")
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "SYNC_DISABLED")

		rec = doRequest(r, "POST", "/sync/pull", "")
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "SYNC_DISABLED")
	})

	t.Run("push writes the local snapshot to the remote", func(t *testing.T) {
		exportSvc := &mockExportService{
			exportFn: func() (map[string]json.RawMessage, error) {
				return map[string]json.RawMessage{"goals": json.RawMessage(`[]`)}, nil
			},
		}
		remote := &stubRemote{}
		sync := syncer.New(exportSvc, remote, zap.NewNop().Sugar())
		r := setupSyncRouter(NewSyncHandler(exportSvc, sync))

		rec := doRequest(r, "POST", "/sync/push", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if string(remote.data["goals"]) != `[]` {
			t.Errorf("expected goals on the remote, got %v", remote.data)
		}
	})

	t.Run("pull failure maps to 502", func(t *testing.T) {
		remote := &stubRemote{fetchErr: errors.New("connection refused")}
		sync := syncer.New(&mockExportService{}, remote, zap.NewNop().Sugar())
		r := setupSyncRouter(NewSyncHandler(&mockExportService{}, sync))

		rec := doRequest(r, "POST", "/sync/pull", "")

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "SYNC_FAILED")
	})
}

func TestSyncHandler_ClearAll(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		cleared := false
		exportSvc := &mockExportService{
			clearAllFn: func() error {
				cleared = true
				return nil
			},
		}
		r := setupSyncRouter(NewSyncHandler(exportSvc, nil))

		rec := doRequest(r, "POST", "/sync/clear", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !cleared {
			t.Error("expected the service to be called")
		}
	})
}
