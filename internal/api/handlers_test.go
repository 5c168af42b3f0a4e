package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/lukev/gwent_server/internal/card"
	"github.com/lukev/gwent_server/internal/match"
)

func unitCard(id string, power int) card.Card {
	return card.Card{ID: id, Name: id, Type: card.TypeUnit, HomeRow: card.RowMelee, BasePower: power}
}

func newTestServer() (*httptest.Server, *match.Manager) {
	mgr := match.NewManager()
	p1 := match.NewPlayer("P1", nil, nil)
	p2 := match.NewPlayer("P2", nil, nil)
	p1.Hand = []card.Card{unitCard("a", 5)}
	p2.Hand = []card.Card{unitCard("b", 3)}
	mgr.CreateMatch("m1", match.New([2]*match.Player{p1, p2}))

	handler := NewMatchHandler(mgr, nil, nil)
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return httptest.NewServer(router), mgr
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	return resp
}

func TestHandlePlaySucceeds(t *testing.T) {
	srv, _ := newTestServer()
	defer srv.Close()

	rev := 0
	resp := postJSON(t, srv.URL+"/api/match/play", playRequest{
		MatchID: "m1", PlayerID: "P1", CardID: "a", ExpectedRevision: &rev,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var res match.ActionResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Revision != 1 {
		t.Fatalf("expected revision 1, got %d", res.Revision)
	}
}

func TestHandlePlayUnknownCardReturnsBadRequest(t *testing.T) {
	srv, _ := newTestServer()
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/match/play", playRequest{
		MatchID: "m1", PlayerID: "P1", CardID: "ghost",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestHandlePlayUnknownMatchReturnsNotFound(t *testing.T) {
	srv, _ := newTestServer()
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/match/play", playRequest{
		MatchID: "ghost", PlayerID: "P1", CardID: "a",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestHandleStateReportsSnapshot(t *testing.T) {
	srv, _ := newTestServer()
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/match/state?matchId=m1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["matchId"] != "m1" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestHandlePassRevisionMismatchReturnsConflict(t *testing.T) {
	srv, _ := newTestServer()
	defer srv.Close()

	stale := 5
	resp := postJSON(t, srv.URL+"/api/match/pass", passRequest{
		MatchID: "m1", PlayerID: "P1", ExpectedRevision: &stale,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}
