package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"Rialto/internal/citizen/app"
	"Rialto/internal/citizen/domain"
	"Rialto/modules/kit/errx"
	"Rialto/modules/kit/logx"
)

type fakeGetter struct {
	snap      *domain.Snapshot
	err       error
	lastShape app.Shape
	lastForce bool
	lastID    string
}

func (f *fakeGetter) GetSnapshot(ctx context.Context, citizenID string, shape app.Shape, forceRefresh bool) (*domain.Snapshot, error) {
	f.lastID = citizenID
	f.lastShape = shape
	f.lastForce = forceRefresh
	return f.snap, f.err
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, fields ...zap.Field)       {}
func (nopLogger) Info(msg string, fields ...zap.Field)        {}
func (nopLogger) Warn(msg string, fields ...zap.Field)        {}
func (nopLogger) Error(msg string, fields ...zap.Field)       {}
func (nopLogger) WithContext(ctx context.Context) logx.Logger { return nopLogger{} }

func newTestRouter(g *fakeGetter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewSnapshot(g, nopLogger{}, time.Minute).RegisterRoutes(engine.Group(""))
	return engine
}

func doGet(t *testing.T, engine *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	engine.ServeHTTP(w, req)
	return w
}

func sampleSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Citizen: domain.Citizen{
			Username: "marco", FirstName: "Marco", LastName: "Polo",
			SocialClass: domain.ClassCittadini, Ducats: 1200,
		},
		Mood: domain.NeutralMood(),
	}
}

func TestGet_raw返回JSON快照(t *testing.T) {
	g := &fakeGetter{snap: sampleSnapshot()}
	w := doGet(t, newTestRouter(g), "/api/v1/citizens/marco/snapshot")

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if g.lastID != "marco" || g.lastShape != app.ShapeRaw || g.lastForce {
		t.Fatalf("参数透传错误: id=%s shape=%s force=%v", g.lastID, g.lastShape, g.lastForce)
	}
	var body struct {
		Code int `json:"code"`
		Data struct {
			Citizen domain.Citizen `json:"citizen"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Code != 0 || body.Data.Citizen.Username != "marco" {
		t.Fatalf("响应体错误: %s", w.Body.String())
	}
}

func TestGet_formatted返回纯文本(t *testing.T) {
	g := &fakeGetter{snap: sampleSnapshot()}
	w := doGet(t, newTestRouter(g), "/api/v1/citizens/marco/snapshot?shape=formatted")

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("Content-Type=%s", ct)
	}
	if !strings.Contains(w.Body.String(), "Marco Polo") {
		t.Fatalf("文本缺公民名: %s", w.Body.String())
	}
	if g.lastShape != app.ShapeFormatted {
		t.Fatalf("shape 透传错误: %s", g.lastShape)
	}
}

func TestGet_force_refresh透传(t *testing.T) {
	g := &fakeGetter{snap: sampleSnapshot()}
	doGet(t, newTestRouter(g), "/api/v1/citizens/marco/snapshot?force_refresh=true")
	if !g.lastForce {
		t.Fatal("force_refresh 未透传")
	}
}

func TestGet_未知shape返回400(t *testing.T) {
	g := &fakeGetter{snap: sampleSnapshot()}
	w := doGet(t, newTestRouter(g), "/api/v1/citizens/marco/snapshot?shape=markdown")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), string(errx.CodeBadRequest)) {
		t.Fatalf("响应应带参数错误码: %s", w.Body.String())
	}
}

func TestGet_公民不存在返回404(t *testing.T) {
	g := &fakeGetter{err: app.ErrCitizenNotFound.WithData("citizen_id", "ghost")}
	w := doGet(t, newTestRouter(g), "/api/v1/citizens/ghost/snapshot")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestGet_内部错误返回500且不泄露细节(t *testing.T) {
	g := &fakeGetter{err: context.DeadlineExceeded}
	w := doGet(t, newTestRouter(g), "/api/v1/citizens/marco/snapshot")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	if strings.Contains(w.Body.String(), "deadline") {
		t.Fatalf("内部细节泄露: %s", w.Body.String())
	}
}
