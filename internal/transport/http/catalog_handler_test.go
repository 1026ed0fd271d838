package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/olwandejj/Quizzify/internal/domain"
	"github.com/olwandejj/Quizzify/internal/infra/memory"
)

func newCatalogTestServer(t *testing.T) (*httptest.Server, *memory.Leaderboard) {
	t.Helper()
	catalog := memory.NewCatalogRepository(memory.NewStaticCatalogLoader(memory.BuiltinCategories()), 5*time.Minute)
	boards := memory.NewLeaderboard()
	handler := NewCatalogHandler(catalog, boards, 2)

	mux := http.NewServeMux()
	mux.HandleFunc("/categories", handler.Categories)
	mux.HandleFunc("/leaderboard", handler.Leaderboard)
	return httptest.NewServer(mux), boards
}

func TestCategoriesEndpoint(t *testing.T) {
	server, _ := newCatalogTestServer(t)
	defer server.Close()

	resp, err := http.Get(server.URL + "/categories")
	if err != nil {
		t.Fatalf("get categories: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Categories []string `json:"categories"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{"History Quiz", "Math Quiz", "Science Quiz"}
	if len(body.Categories) != len(want) {
		t.Fatalf("expected %d categories, got %v", len(want), body.Categories)
	}
	for i := range want {
		if body.Categories[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, body.Categories)
		}
	}
}

func TestCategoriesRejectsPost(t *testing.T) {
	server, _ := newCatalogTestServer(t)
	defer server.Close()

	resp, err := http.Post(server.URL+"/categories", "application/json", nil)
	if err != nil {
		t.Fatalf("post categories: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}

func TestLeaderboardEndpoint(t *testing.T) {
	server, boards := newCatalogTestServer(t)
	defer server.Close()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	runs := []domain.LeaderboardEntry{
		{ClientID: "c1", Name: "Alice", Category: "Math Quiz", Score: 7, Total: 10, FinishedAt: base},
		{ClientID: "c2", Name: "Bob", Category: "Math Quiz", Score: 10, Total: 10, FinishedAt: base.Add(time.Minute)},
		{ClientID: "c3", Name: "Cara", Category: "Math Quiz", Score: 9, Total: 10, FinishedAt: base.Add(2 * time.Minute)},
	}
	for _, run := range runs {
		if err := boards.Record(context.Background(), run); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	query := url.Values{"category": {"Math Quiz"}}
	resp, err := http.Get(server.URL + "/leaderboard?" + query.Encode())
	if err != nil {
		t.Fatalf("get leaderboard: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Category string                    `json:"category"`
		Entries  []domain.LeaderboardEntry `json:"entries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// The handler default limit trims to the top two.
	if len(body.Entries) != 2 || body.Entries[0].Name != "Bob" || body.Entries[1].Name != "Cara" {
		t.Fatalf("unexpected entries: %+v", body.Entries)
	}

	query.Set("limit", "1")
	resp2, err := http.Get(server.URL + "/leaderboard?" + query.Encode())
	if err != nil {
		t.Fatalf("get leaderboard: %v", err)
	}
	defer resp2.Body.Close()
	if err := json.NewDecoder(resp2.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Entries) != 1 || body.Entries[0].Name != "Bob" {
		t.Fatalf("expected only the leader, got %+v", body.Entries)
	}
}

func TestLeaderboardValidatesQuery(t *testing.T) {
	server, _ := newCatalogTestServer(t)
	defer server.Close()

	resp, err := http.Get(server.URL + "/leaderboard")
	if err != nil {
		t.Fatalf("get leaderboard: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without category, got %d", resp.StatusCode)
	}

	resp2, err := http.Get(server.URL + "/leaderboard?category=Math+Quiz&limit=zero")
	if err != nil {
		t.Fatalf("get leaderboard: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", resp2.StatusCode)
	}
}
