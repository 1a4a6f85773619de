package persist

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theoremus-urban-solutions/travel-registry/registry"
	"github.com/theoremus-urban-solutions/travel-registry/travel"
	"github.com/theoremus-urban-solutions/travel-registry/user"
)

func testLeg(t *testing.T, cat travel.Category, id, start, end, origin, destination string, capacity int) *travel.Leg {
	t.Helper()
	s, err := travel.ParseDateTime(start)
	if err != nil {
		t.Fatal(err)
	}
	e, err := travel.ParseDateTime(end)
	if err != nil {
		t.Fatal(err)
	}
	return travel.NewLeg(cat, id, s, e, origin, destination, decimal.RequireFromString("99.99"), capacity, "TestAir")
}

func populate(t *testing.T, reg *registry.Registry) {
	t.Helper()
	a := testLeg(t, travel.Flight, "A", "2026-03-14 16:37", "2026-03-14 17:22", "London", "Paris", 10)
	b := testLeg(t, travel.Rail, "B", "2026-03-14 19:22", "2026-03-14 22:40", "Paris", "Rome", 10)
	reg.AddLegs([]*travel.Leg{a, b})

	acct := reg.AddUser(user.NewAccount("ada@example.com", "Ada", "Lovelace", "12 Analytical Row",
		"4000123412341234", time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)))
	it := travel.NewItinerary()
	if err := it.Add(a); err != nil {
		t.Fatal(err)
	}
	if err := it.Add(b); err != nil {
		t.Fatal(err)
	}
	acct.Book(it)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	src := registry.New(registry.Options{})
	populate(t, src)
	if err := store.Save(src); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	store, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = store.Close() }()

	dst := registry.New(registry.Options{})
	if err := store.Load(dst); err != nil {
		t.Fatalf("load: %v", err)
	}

	a := dst.Leg(travel.Flight, "A")
	if a == nil {
		t.Fatal("leg A not restored")
	}
	if travel.FormatDateTime(a.Start) != "2026-03-14 16:37" || a.Cost.StringFixed(2) != "99.99" {
		t.Errorf("leg fields not restored: %s", a)
	}

	acct := dst.User("ada@example.com")
	if acct == nil {
		t.Fatal("account not restored")
	}
	if acct.Name() != "Ada Lovelace" {
		t.Errorf("profile not restored: %s", acct.Name())
	}
	if len(acct.Booked()) != 1 {
		t.Fatalf("expected 1 restored booking, got %d", len(acct.Booked()))
	}
	it := acct.Booked()[0]
	if it.Len() != 2 || it.OriginName() != "London" || it.DestinationName() != "Rome" {
		t.Errorf("itinerary chain not restored: %d legs", it.Len())
	}
	// Replay derives the seat counters instead of storing them.
	if a.Bookings() != 1 {
		t.Errorf("expected the restored booking to hold a seat, got %d", a.Bookings())
	}
}

func TestLoadDropsBookingsWithMissingLegs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = store.Close() }()

	src := registry.New(registry.Options{})
	populate(t, src)
	if err := store.Save(src); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Orphan the booking's second leg behind the snapshot's back.
	if _, err := store.db.Exec(`DELETE FROM legs WHERE id = 'B'`); err != nil {
		t.Fatal(err)
	}

	dst := registry.New(registry.Options{})
	if err := store.Load(dst); err != nil {
		t.Fatalf("load: %v", err)
	}

	acct := dst.User("ada@example.com")
	if acct == nil {
		t.Fatal("account not restored")
	}
	if len(acct.Booked()) != 0 {
		t.Errorf("booking referencing a missing leg must be dropped, got %d", len(acct.Booked()))
	}
	if a := dst.Leg(travel.Flight, "A"); a == nil || a.Bookings() != 0 {
		t.Error("dropped booking must not hold seats on surviving legs")
	}
}

func TestSaveOverwritesPreviousSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = store.Close() }()

	src := registry.New(registry.Options{})
	populate(t, src)
	if err := store.Save(src); err != nil {
		t.Fatalf("first save: %v", err)
	}

	src.RemoveLeg(travel.Rail, "B")
	if err := store.Save(src); err != nil {
		t.Fatalf("second save: %v", err)
	}

	dst := registry.New(registry.Options{})
	if err := store.Load(dst); err != nil {
		t.Fatalf("load: %v", err)
	}
	if dst.Leg(travel.Rail, "B") != nil {
		t.Error("stale rows must not survive a save")
	}
}
