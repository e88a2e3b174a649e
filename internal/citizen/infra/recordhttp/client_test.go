package recordhttp

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"Rialto/internal/shared/recordstore"
	"Rialto/internal/shared/serverconfig"
)

func newTestClient(h http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(h)
	c := New(serverconfig.RecordStoreConfig{
		BaseURL:  srv.URL,
		APIKey:   "key-123",
		TimeoutS: 2,
	})
	return c, srv
}

func TestSelect_带公式与鉴权头(t *testing.T) {
	var gotFormula, gotAuth string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotFormula = r.URL.Query().Get("filterByFormula")
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"records":[{"id":"rec1","fields":{"owner":"marco"}}]}`)
	})
	defer srv.Close()

	recs, err := c.Select(context.Background(), "lands", recordstore.Eq("owner", "marco"))
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].ID != "rec1" {
		t.Fatalf("记录解析错误: %+v", recs)
	}
	if gotFormula != "{owner}='marco'" {
		t.Fatalf("公式错误: %q", gotFormula)
	}
	if gotAuth != "Bearer key-123" {
		t.Fatalf("鉴权头错误: %q", gotAuth)
	}
}

func TestSelect_自动翻页并按MaxRecords截断(t *testing.T) {
	calls := 0
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("offset") == "" {
			fmt.Fprint(w, `{"records":[{"id":"r1","fields":{}},{"id":"r2","fields":{}}],"offset":"page2"}`)
			return
		}
		fmt.Fprint(w, `{"records":[{"id":"r3","fields":{}},{"id":"r4","fields":{}}]}`)
	})
	defer srv.Close()

	recs, err := c.Select(context.Background(), "contracts", nil, recordstore.WithMaxRecords(3))
	if err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Fatalf("应翻到第二页: calls=%d", calls)
	}
	if len(recs) != 3 || recs[2].ID != "r3" {
		t.Fatalf("截断错误: %+v", recs)
	}
}

func TestSelect_非200返回错误(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer srv.Close()

	if _, err := c.Select(context.Background(), "citizens", nil); err == nil {
		t.Fatal("期望错误")
	}
}
