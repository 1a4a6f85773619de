package persist

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/theoremus-urban-solutions/travel-registry/registry"
	"github.com/theoremus-urban-solutions/travel-registry/travel"
	"github.com/theoremus-urban-solutions/travel-registry/user"
)

const schema = `
CREATE TABLE IF NOT EXISTS legs (
	category TEXT NOT NULL,
	id TEXT NOT NULL,
	start TEXT NOT NULL,
	end TEXT NOT NULL,
	origin TEXT NOT NULL,
	destination TEXT NOT NULL,
	cost TEXT NOT NULL,
	capacity INTEGER NOT NULL,
	provider TEXT NOT NULL,
	PRIMARY KEY (category, id)
);
CREATE TABLE IF NOT EXISTS users (
	email TEXT PRIMARY KEY,
	first_names TEXT NOT NULL,
	last_name TEXT NOT NULL,
	address TEXT NOT NULL,
	credit_card TEXT NOT NULL,
	expiry TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS bookings (
	email TEXT NOT NULL,
	itinerary INTEGER NOT NULL,
	seq INTEGER NOT NULL,
	leg_category TEXT NOT NULL,
	leg_id TEXT NOT NULL,
	PRIMARY KEY (email, itinerary, seq)
);
`

// Store is a snapshotting SQLite-backed persistence collaborator for the
// registry. The whole registry state is rewritten on every Save.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the snapshot database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Save rewrites the snapshot from the registry's current state.
func (s *Store) Save(reg *registry.Registry) (retErr error) {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, table := range []string{"legs", "users", "bookings"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	for _, cat := range travel.Categories() {
		for _, leg := range reg.Legs(cat) {
			if _, err := tx.Exec(
				`INSERT INTO legs (category, id, start, end, origin, destination, cost, capacity, provider)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				cat.String(), leg.ID, travel.FormatDateTime(leg.Start), travel.FormatDateTime(leg.End),
				leg.Origin, leg.Destination, leg.Cost.String(), leg.Capacity, leg.Provider,
			); err != nil {
				return fmt.Errorf("insert leg %s/%s: %w", cat, leg.ID, err)
			}
		}
	}
	for _, acct := range reg.Users() {
		if _, err := tx.Exec(
			`INSERT INTO users (email, first_names, last_name, address, credit_card, expiry)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			acct.Email, acct.FirstNames, acct.LastName, acct.Address, acct.CreditCard,
			travel.FormatDate(acct.Expiry),
		); err != nil {
			return fmt.Errorf("insert user %s: %w", acct.Email, err)
		}
		for itinIdx, it := range acct.Booked() {
			for seq, leg := range it.Legs() {
				if _, err := tx.Exec(
					`INSERT INTO bookings (email, itinerary, seq, leg_category, leg_id)
					 VALUES (?, ?, ?, ?, ?)`,
					acct.Email, itinIdx, seq, leg.Cat.String(), leg.ID,
				); err != nil {
					return fmt.Errorf("insert booking for %s: %w", acct.Email, err)
				}
			}
		}
	}
	return tx.Commit()
}

// Load replays the snapshot into the registry: legs, users, then booked
// itineraries reconstructed leg-by-leg. Itineraries referencing a leg
// that no longer resolves, or whose chain no longer validates, are
// dropped with a diagnostic.
func (s *Store) Load(reg *registry.Registry) error {
	if err := s.loadLegs(reg); err != nil {
		return err
	}
	if err := s.loadUsers(reg); err != nil {
		return err
	}
	return s.loadBookings(reg)
}

func (s *Store) loadLegs(reg *registry.Registry) error {
	rows, err := s.db.Query(`SELECT category, id, start, end, origin, destination, cost, capacity, provider FROM legs`)
	if err != nil {
		return fmt.Errorf("select legs: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var catName, id, startStr, endStr, origin, destination, costStr, provider string
		var capacity int
		if err := rows.Scan(&catName, &id, &startStr, &endStr, &origin, &destination, &costStr, &capacity, &provider); err != nil {
			return fmt.Errorf("scan leg: %w", err)
		}
		cat, ok := travel.ParseCategory(catName)
		if !ok {
			log.Printf("persist: unknown category %q for leg %q, skipping", catName, id)
			continue
		}
		start, err := travel.ParseDateTime(startStr)
		if err != nil {
			return fmt.Errorf("leg %s/%s start: %w", catName, id, err)
		}
		end, err := travel.ParseDateTime(endStr)
		if err != nil {
			return fmt.Errorf("leg %s/%s end: %w", catName, id, err)
		}
		cost, err := decimal.NewFromString(costStr)
		if err != nil {
			return fmt.Errorf("leg %s/%s cost: %w", catName, id, err)
		}
		reg.AddLeg(travel.NewLeg(cat, id, start, end, origin, destination, cost, capacity, provider))
	}
	return rows.Err()
}

func (s *Store) loadUsers(reg *registry.Registry) error {
	rows, err := s.db.Query(`SELECT email, first_names, last_name, address, credit_card, expiry FROM users`)
	if err != nil {
		return fmt.Errorf("select users: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var email, firstNames, lastName, address, creditCard, expiryStr string
		if err := rows.Scan(&email, &firstNames, &lastName, &address, &creditCard, &expiryStr); err != nil {
			return fmt.Errorf("scan user: %w", err)
		}
		expiry, err := travel.ParseDate(expiryStr)
		if err != nil {
			return fmt.Errorf("user %s expiry: %w", email, err)
		}
		reg.AddUser(user.NewAccount(email, firstNames, lastName, address, creditCard, expiry))
	}
	return rows.Err()
}

type bookingRow struct {
	email string
	itin  int
	cat   string
	legID string
}

func (s *Store) loadBookings(reg *registry.Registry) error {
	rows, err := s.db.Query(`SELECT email, itinerary, leg_category, leg_id FROM bookings ORDER BY email, itinerary, seq`)
	if err != nil {
		return fmt.Errorf("select bookings: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var all []bookingRow
	for rows.Next() {
		var r bookingRow
		if err := rows.Scan(&r.email, &r.itin, &r.cat, &r.legID); err != nil {
			return fmt.Errorf("scan booking: %w", err)
		}
		all = append(all, r)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	// Group consecutive rows per (email, itinerary) and rebuild each chain.
	for i := 0; i < len(all); {
		j := i
		for j < len(all) && all[j].email == all[i].email && all[j].itin == all[i].itin {
			j++
		}
		s.restoreItinerary(reg, all[i].email, all[i:j])
		i = j
	}
	return nil
}

func (s *Store) restoreItinerary(reg *registry.Registry, email string, legs []bookingRow) {
	acct := reg.User(email)
	if acct == nil {
		log.Printf("persist: booking for unknown user %s, dropping", email)
		return
	}
	it := travel.NewItinerary()
	for _, row := range legs {
		cat, ok := travel.ParseCategory(row.cat)
		if !ok {
			log.Printf("persist: booking for %s references unknown category %q, dropping itinerary", email, row.cat)
			return
		}
		leg := reg.Leg(cat, row.legID)
		if leg == nil {
			log.Printf("persist: booking for %s references missing leg %s/%s, dropping itinerary", email, row.cat, row.legID)
			return
		}
		if err := it.Add(leg); err != nil {
			log.Printf("persist: booking for %s no longer chains: %v, dropping itinerary", email, err)
			return
		}
	}
	acct.Book(it)
}
