package match

import (
	"testing"

	"github.com/lukev/gwent_server/internal/card"
)

func newManagerMatch() *Match {
	p1 := NewPlayer("P1", nil, nil)
	p2 := NewPlayer("P2", nil, nil)
	p1.Hand = []card.Card{unitCard("a", 5)}
	p2.Hand = []card.Card{unitCard("b", 3)}
	return New([2]*Player{p1, p2})
}

func TestManagerPlayCardAdvancesRevision(t *testing.T) {
	mgr := NewManager()
	mgr.CreateMatch("m1", newManagerMatch())

	res, err := mgr.PlayCardWithMeta("m1", "P1", "a", nil, nil, ActionMeta{ExpectedRevision: 0})
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if res.Revision != 1 || res.Duplicate {
		t.Fatalf("unexpected result: %+v", res)
	}
	rev, ok := mgr.GetRevision("m1")
	if !ok || rev != 1 {
		t.Fatalf("expected revision 1, got %d ok=%v", rev, ok)
	}
}

func TestManagerRevisionMismatch(t *testing.T) {
	mgr := NewManager()
	mgr.CreateMatch("m1", newManagerMatch())

	_, err := mgr.PlayCardWithMeta("m1", "P1", "a", nil, nil, ActionMeta{ExpectedRevision: 5})
	if _, ok := err.(*RevisionMismatchError); !ok {
		t.Fatalf("expected RevisionMismatchError, got %v", err)
	}
}

func TestManagerDuplicateActionIDIsNoOp(t *testing.T) {
	mgr := NewManager()
	mgr.CreateMatch("m1", newManagerMatch())

	meta := ActionMeta{ActionID: "req-1", ExpectedRevision: 0}
	first, err := mgr.PlayCardWithMeta("m1", "P1", "a", nil, nil, meta)
	if err != nil {
		t.Fatalf("first play: %v", err)
	}
	second, err := mgr.PlayCardWithMeta("m1", "P1", "a", nil, nil, meta)
	if err != nil {
		t.Fatalf("duplicate replay: %v", err)
	}
	if !second.Duplicate || second.Revision != first.Revision {
		t.Fatalf("expected duplicate replay to be a no-op at the same revision, got %+v", second)
	}
}

func TestManagerMatchNotFound(t *testing.T) {
	mgr := NewManager()
	_, err := mgr.PlayCardWithMeta("ghost", "P1", "a", nil, nil, ActionMeta{ExpectedRevision: -1})
	if _, ok := err.(*MatchNotFoundError); !ok {
		t.Fatalf("expected MatchNotFoundError, got %v", err)
	}
}
