package health

import (
	"context"
	"errors"
	"testing"
	"time"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockCatalog struct {
	size        int
	lastRefresh time.Time
}

func (m *mockCatalog) Len() int               { return m.size }
func (m *mockCatalog) LastRefresh() time.Time { return m.lastRefresh }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockCatalog{size: 8, lastRefresh: time.Now()})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["database"] != CheckOK {
		t.Errorf("expected database %q, got %q", CheckOK, r.Checks["database"])
	}
	if r.Checks["catalog"] != CheckOK {
		t.Errorf("expected catalog %q, got %q", CheckOK, r.Checks["catalog"])
	}
}

func TestCheck_DBError(t *testing.T) {
	svc := New(&mockDBPinger{err: errors.New("conn refused")}, &mockCatalog{lastRefresh: time.Now()})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Errorf("expected database %q, got %q", CheckError, r.Checks["database"])
	}
	if r.Checks["catalog"] != CheckOK {
		t.Errorf("expected catalog %q, got %q", CheckOK, r.Checks["catalog"])
	}
}

func TestCheck_CatalogNeverLoaded(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockCatalog{})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["catalog"] != CheckError {
		t.Errorf("expected catalog %q, got %q", CheckError, r.Checks["catalog"])
	}
}

func TestCheck_CatalogStaleBeyondMaxAge(t *testing.T) {
	stale := &mockCatalog{size: 8, lastRefresh: time.Now().Add(-time.Hour)}
	svc := New(&mockDBPinger{}, stale).WithCatalogMaxAge(time.Minute)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["catalog"] != CheckError {
		t.Errorf("expected catalog %q, got %q", CheckError, r.Checks["catalog"])
	}
}

func TestCheck_NoMaxAge_StaleCatalogStillOK(t *testing.T) {
	stale := &mockCatalog{size: 8, lastRefresh: time.Now().Add(-time.Hour)}
	svc := New(&mockDBPinger{}, stale)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
}

func TestCheck_NilDB(t *testing.T) {
	svc := New(nil, &mockCatalog{size: 3, lastRefresh: time.Now()})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["database"]; ok {
		t.Error("expected no database check when db is nil")
	}
}
