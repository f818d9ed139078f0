package canvas

import (
	"fmt"
	"testing"
	"time"
)

func TestHistoryBound(t *testing.T) {
	h := NewHistory()
	base := time.Now()

	// 60 distinct snapshots; only the most recent 50 survive, in order.
	var states []*State
	for i := 0; i < 60; i++ {
		s := NewState()
		s.Items = []*Item{testItem(fmt.Sprintf("item-%02d", i), base)}
		s.NextZ = i + 1
		states = append(states, s)
	}
	for i, s := range states {
		post := NewState()
		post.NextZ = 1000 + i
		h.Push(s, post)
	}

	if h.Len() != HistoryDepth {
		t.Fatalf("Len() = %d, want %d", h.Len(), HistoryDepth)
	}
	for i := 59; i >= 10; i-- {
		got, ok := h.Pop()
		if !ok {
			t.Fatalf("Pop() empty at %d", i)
		}
		if got != states[i] {
			t.Fatalf("Pop() order wrong at %d", i)
		}
	}
	if _, ok := h.Pop(); ok {
		t.Error("oldest 10 snapshots should have been discarded")
	}
}

func TestHistorySkipsIdenticalContent(t *testing.T) {
	h := NewHistory()
	s := NewState()
	s.Items = []*Item{testItem("a", time.Now())}

	h.Push(s.Clone(), s)
	if h.Len() != 0 {
		t.Error("identical pre/post pushed")
	}

	// Selection-only changes don't pollute history.
	pre := s.Clone()
	post := s.Clone()
	post.SelectedID = "a"
	h.Push(pre, post)
	if h.Len() != 0 {
		t.Error("selection-only change pushed")
	}

	post = s.Clone()
	post.Items[0].X += 10
	h.Push(pre, post)
	if h.Len() != 1 {
		t.Error("real change not pushed")
	}
}

func TestHistoryPopEmpty(t *testing.T) {
	h := NewHistory()
	if _, ok := h.Pop(); ok {
		t.Error("Pop() on empty history returned ok")
	}
}
