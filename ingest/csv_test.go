package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theoremus-urban-solutions/travel-registry/registry"
	"github.com/theoremus-urban-solutions/travel-registry/travel"
)

func TestReadLegs(t *testing.T) {
	in := strings.Join([]string{
		"FL001,2026-03-14 16:37,2026-03-14 17:22,TestAir,London,Paris,99.99,120",
		"FL002,not-a-date,2026-03-14 18:00,TestAir,London,Rome,80.00,90",
		"FL003,2026-03-14 09:00,2026-03-14 11:30,TestAir,London,Madrid,75.50,150",
		"FL004,2026-03-14 09:00,2026-03-14 11:30,TestAir,London,Madrid,75.50,lots",
		"short,line",
	}, "\n")

	legs, err := ReadLegs(strings.NewReader(in), travel.Flight)
	if err != nil {
		t.Fatalf("ReadLegs: %v", err)
	}
	if len(legs) != 2 {
		t.Fatalf("expected 2 parsed legs, got %d", len(legs))
	}
	first := legs[0]
	if first.ID != "FL001" || first.Cat != travel.Flight {
		t.Errorf("wrong identity: %s/%s", first.Cat, first.ID)
	}
	if travel.FormatDateTime(first.Start) != "2026-03-14 16:37" {
		t.Errorf("wrong departure: %s", travel.FormatDateTime(first.Start))
	}
	if first.Cost.StringFixed(2) != "99.99" || first.Capacity != 120 {
		t.Errorf("wrong cost or capacity: %s / %d", first.Cost, first.Capacity)
	}
	if legs[1].ID != "FL003" {
		t.Errorf("bad lines must be skipped in order, got %s", legs[1].ID)
	}
}

func TestReadAccounts(t *testing.T) {
	in := strings.Join([]string{
		"Lovelace,Ada,ada@example.com,12 Analytical Row,4000123412341234,2027-01-01",
		"Turing,Alan,not-an-email,Bletchley Park,4111111111111111,2028-01-01",
		"Hopper,Grace,grace@example.com,9 Compiler Court,4222222222222222,2029-06-30",
	}, "\n")

	accts, err := ReadAccounts(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadAccounts: %v", err)
	}
	if len(accts) != 2 {
		t.Fatalf("expected 2 parsed accounts, got %d", len(accts))
	}
	if accts[0].Email != "ada@example.com" || accts[0].Name() != "Ada Lovelace" {
		t.Errorf("wrong first account: %s", accts[0])
	}
	if travel.FormatDate(accts[1].Expiry) != "2029-06-30" {
		t.Errorf("wrong expiry: %s", travel.FormatDate(accts[1].Expiry))
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	writeFile("flight.csv", "FL001,2026-03-14 16:37,2026-03-14 17:22,TestAir,London,Paris,99.99,120\n")
	writeFile("rail.csv", "R100,2026-03-14 08:00,2026-03-14 11:00,EuroRail,London,Paris,45.00,300\n")
	writeFile("users.csv", "Lovelace,Ada,ada@example.com,12 Analytical Row,4000123412341234,2027-01-01\n")

	reg := registry.New(registry.Options{})
	loaded, err := LoadDir(dir, reg)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if loaded.Legs != 2 || loaded.Accounts != 1 {
		t.Fatalf("expected 2 legs and 1 account, got %d/%d", loaded.Legs, loaded.Accounts)
	}
	if reg.Leg(travel.Flight, "FL001") == nil || reg.Leg(travel.Rail, "R100") == nil {
		t.Error("legs not registered")
	}
	if reg.User("ada@example.com") == nil {
		t.Error("account not registered")
	}
}

func TestLoadDirMissingFilesAreSkipped(t *testing.T) {
	reg := registry.New(registry.Options{})
	loaded, err := LoadDir(t.TempDir(), reg)
	if err != nil {
		t.Fatalf("LoadDir on an empty dir: %v", err)
	}
	if loaded.Legs != 0 || loaded.Accounts != 0 {
		t.Errorf("expected nothing loaded, got %d/%d", loaded.Legs, loaded.Accounts)
	}
}
