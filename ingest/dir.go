package ingest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/theoremus-urban-solutions/travel-registry/registry"
	"github.com/theoremus-urban-solutions/travel-registry/travel"
)

// Loaded summarizes one directory load.
type Loaded struct {
	Legs     int
	Accounts int
}

// LoadDir reads every recognized record file in dir into the registry:
// flight.csv, rail.csv, coach.csv, ferry.csv and users.csv. Files that do
// not exist are skipped.
func LoadDir(dir string, reg *registry.Registry) (Loaded, error) {
	var loaded Loaded
	for _, cat := range travel.Categories() {
		path := filepath.Join(dir, strings.ToLower(cat.String())+".csv")
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return loaded, err
		}
		legs, err := ReadLegs(f, cat)
		_ = f.Close()
		if err != nil {
			return loaded, err
		}
		reg.AddLegs(legs)
		loaded.Legs += len(legs)
	}
	path := filepath.Join(dir, "users.csv")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return loaded, nil
		}
		return loaded, err
	}
	accounts, err := ReadAccounts(f)
	_ = f.Close()
	if err != nil {
		return loaded, err
	}
	for _, acct := range accounts {
		reg.AddUser(acct)
	}
	loaded.Accounts = len(accounts)
	return loaded, nil
}
