package worldapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"Rialto/internal/citizen/domain"
	"Rialto/internal/shared/serverconfig"
)

func newTestClient(h http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(h)
	return New(serverconfig.WorldAPIConfig{BaseURL: srv.URL, TimeoutS: 2}), srv
}

func TestGetParcel_404按无几何处理(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer srv.Close()

	geom, err := c.GetParcel(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("404 不应是错误: %v", err)
	}
	if geom != nil {
		t.Fatalf("期望 nil 几何, got %+v", geom)
	}
}

func TestGetParcel_解码锚点(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"building_points":[{"id":"pt1","lat":45.43,"lng":12.33}],"canal_points":[],"bridge_points":[]}`)
	})
	defer srv.Close()

	geom, err := c.GetParcel(context.Background(), "p1")
	if err != nil {
		t.Fatal(err)
	}
	if len(geom.BuildingPoints) != 1 || geom.BuildingPoints[0].ID != "pt1" {
		t.Fatalf("几何解码错误: %+v", geom)
	}
}

func TestWhoAndWhatAt_带坐标参数(t *testing.T) {
	var gotLat, gotLng string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotLat = r.URL.Query().Get("lat")
		gotLng = r.URL.Query().Get("lng")
		fmt.Fprint(w, `{"structure":{"name":"Rialto Bridge"},"citizens":[{"username":"luca"}]}`)
	})
	defer srv.Close()

	scan, err := c.WhoAndWhatAt(context.Background(), domain.Position{Lat: 45.438, Lng: 12.336})
	if err != nil {
		t.Fatal(err)
	}
	if gotLat != "45.438" || gotLng != "12.336" {
		t.Fatalf("坐标参数错误: lat=%s lng=%s", gotLat, gotLng)
	}
	if scan.Structure == nil || scan.Structure.Name != "Rialto Bridge" {
		t.Fatalf("建筑解码错误: %+v", scan.Structure)
	}
	if len(scan.Citizens) != 1 || scan.Citizens[0].Username != "luca" {
		t.Fatalf("公民解码错误: %+v", scan.Citizens)
	}
}

func TestCurrent_服务挂了返回错误(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	if _, err := c.Current(context.Background()); err == nil {
		t.Fatal("期望错误")
	}
}
