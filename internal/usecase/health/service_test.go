package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockCorpus struct {
	fitted bool
	size   int
}

func (m *mockCorpus) Fitted() bool { return m.fitted }
func (m *mockCorpus) Len() int     { return m.size }

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockCorpus{fitted: true, size: 10}, &mockPinger{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["corpus"] != CheckOK {
		t.Errorf("expected corpus %q, got %q", CheckOK, r.Checks["corpus"])
	}
	if r.Checks["history"] != CheckOK {
		t.Errorf("expected history %q, got %q", CheckOK, r.Checks["history"])
	}
}

func TestCheck_UnfittedCorpus(t *testing.T) {
	svc := New(&mockCorpus{fitted: false}, &mockPinger{})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["corpus"] != CheckError {
		t.Errorf("expected corpus %q, got %q", CheckError, r.Checks["corpus"])
	}
}

func TestCheck_EmptyCorpus(t *testing.T) {
	svc := New(&mockCorpus{fitted: true, size: 0}, nil)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
}

func TestCheck_StoreError(t *testing.T) {
	svc := New(&mockCorpus{fitted: true, size: 10}, &mockPinger{err: errors.New("conn refused")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["corpus"] != CheckOK {
		t.Errorf("expected corpus %q, got %q", CheckOK, r.Checks["corpus"])
	}
	if r.Checks["history"] != CheckError {
		t.Errorf("expected history %q, got %q", CheckError, r.Checks["history"])
	}
}

func TestCheck_NoStore(t *testing.T) {
	svc := New(&mockCorpus{fitted: true, size: 10}, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["history"]; ok {
		t.Error("history check should be absent when the store is nil")
	}
}
