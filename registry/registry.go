package registry

import (
	"log"
	"sort"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/travel-registry/travel"
	"github.com/theoremus-urban-solutions/travel-registry/user"
)

// Stopover window defaults: the permitted gap between one leg's arrival
// and the next leg's departure within an itinerary.
const (
	DefaultMinStopover = 30 * time.Minute
	DefaultMaxStopover = 6 * time.Hour
)

// Options tune a Registry. Zero durations fall back to the defaults.
type Options struct {
	MinStopover time.Duration
	MaxStopover time.Duration
}

// Registry composes one leg store per category, the origin index, and the
// account store, and keeps the index consistent with the stores on every
// mutation.
type Registry struct {
	legs     map[travel.Category]*LegStore
	index    *OriginIndex
	accounts *UniqueStore[string, *user.Account]

	minStopover time.Duration
	maxStopover time.Duration
}

// New creates an empty registry.
func New(opts Options) *Registry {
	if opts.MinStopover <= 0 {
		opts.MinStopover = DefaultMinStopover
	}
	if opts.MaxStopover <= 0 {
		opts.MaxStopover = DefaultMaxStopover
	}
	r := &Registry{
		legs:        map[travel.Category]*LegStore{},
		index:       NewOriginIndex(),
		accounts:    NewUniqueStore[string, *user.Account](),
		minStopover: opts.MinStopover,
		maxStopover: opts.MaxStopover,
	}
	for _, cat := range travel.Categories() {
		r.legs[cat] = NewLegStore(cat)
	}
	// Removing a leg from the index invalidates every booked itinerary
	// that references it.
	r.index.Subscribe(LegRemovalFunc(func(leg *travel.Leg) {
		for _, acct := range r.accounts.Values() {
			acct.StripLeg(leg)
		}
	}))
	return r
}

// AddLeg registers or updates a leg. Invalid legs are dropped with a
// diagnostic and AddLeg reports false. Re-adding a leg identical in every
// field is a no-op. A same-identity leg with differing fields is updated
// in place: the old origin's index entry is removed (cascading into
// booked itineraries), the booking counter is reset, and the leg is
// reindexed under its possibly-changed origin.
func (r *Registry) AddLeg(leg *travel.Leg) bool {
	if leg == nil {
		return false
	}
	if leg.Invalid() {
		log.Printf("registry: dropping invalid %s leg %q (%s -> %s)", leg.Cat, leg.ID, leg.Origin, leg.Destination)
		return false
	}
	store := r.legs[leg.Cat]
	if old, ok := store.Get(leg.ID); ok {
		if old.Equal(leg) {
			return true
		}
		r.index.Remove(old)
	}
	leg.ResetBookings()
	live := store.Put(leg)
	r.index.Add(live)
	return true
}

// AddLegs registers every leg in order.
func (r *Registry) AddLegs(legs []*travel.Leg) {
	for _, leg := range legs {
		r.AddLeg(leg)
	}
}

// RemoveLeg deletes a leg by identity: index first, so booked itineraries
// referencing it are invalidated, then the category store. Unknown
// identities are ignored.
func (r *Registry) RemoveLeg(cat travel.Category, id string) {
	store := r.legs[cat]
	if old, ok := store.Get(id); ok {
		r.index.Remove(old)
		store.Remove(id)
	}
}

// RenameLeg moves a stored leg to a new ID within its category. It
// reports false and changes nothing if leg is not the stored instance
// for its ID or the new ID is occupied.
func (r *Registry) RenameLeg(leg *travel.Leg, newID string) bool {
	store := r.legs[leg.Cat]
	if held, ok := store.Get(leg.ID); !ok || held != leg {
		return false
	}
	return store.Rename(leg, newID)
}

// Leg returns the leg with the given identity, or nil. Implements
// travel.LegResolver.
func (r *Registry) Leg(cat travel.Category, id string) *travel.Leg {
	leg, _ := r.legs[cat].Get(id)
	return leg
}

// Legs returns every leg of one category in unspecified order.
func (r *Registry) Legs(cat travel.Category) []*travel.Leg {
	return r.legs[cat].Values()
}

// Index exposes the origin index for read-only inspection.
func (r *Registry) Index() *OriginIndex { return r.index }

// AddUser registers an account, merging profile fields into an existing
// account with the same email. The canonical instance is returned.
func (r *Registry) AddUser(acct *user.Account) *user.Account {
	return r.accounts.Put(acct)
}

// RenameUser changes a registered account's email. It reports false and
// changes nothing if acct is not the stored instance for its email or
// the new email is occupied.
func (r *Registry) RenameUser(acct *user.Account, newEmail string) bool {
	if held, ok := r.accounts.Get(acct.Email); !ok || held != acct {
		return false
	}
	return r.accounts.Rename(acct, newEmail)
}

// RemoveUser deletes an account by email, releasing the seats its booked
// itineraries held.
func (r *Registry) RemoveUser(email string) {
	if acct, ok := r.accounts.Get(email); ok {
		// Cancel mutates the booked list, so drain from the front
		// instead of ranging over it.
		for len(acct.Booked()) > 0 {
			acct.Cancel(acct.Booked()[0])
		}
		r.accounts.Remove(email)
	}
}

// User returns the account with the given email, or nil.
func (r *Registry) User(email string) *user.Account {
	acct, _ := r.accounts.Get(email)
	return acct
}

// Users returns every account in unspecified order.
func (r *Registry) Users() []*user.Account { return r.accounts.Values() }

// SearchUsers returns accounts whose name and email contain the given
// substrings, case-insensitively.
func (r *Registry) SearchUsers(name, email string) []*user.Account {
	name = strings.ToLower(name)
	email = strings.ToLower(email)
	out := []*user.Account{}
	for _, acct := range r.accounts.Values() {
		if strings.Contains(strings.ToLower(acct.Name()), name) &&
			strings.Contains(strings.ToLower(acct.Email), email) {
			out = append(out, acct)
		}
	}
	return out
}

// SearchLegs returns the legs departing on the given calendar day (zero
// date matches all days) from origin to destination. A non-nil cat
// restricts the search to that category's flat scan. Without an origin
// the index is unusable, so every category is scanned. A non-nil ordering
// sorts the results post-hoc.
func (r *Registry) SearchLegs(date time.Time, origin, destination string, cat *travel.Category, order travel.Ordering) []*travel.Leg {
	w := Window{Lower: date}
	var out []*travel.Leg
	switch {
	case cat != nil:
		out = r.legs[*cat].Search(w, origin, destination, true)
	case origin == "":
		out = []*travel.Leg{}
		for _, c := range travel.Categories() {
			out = append(out, r.legs[c].Search(w, "", destination, true)...)
		}
	default:
		out = r.index.Query(origin, destination, false, w)
	}
	if order != nil {
		sort.SliceStable(out, func(i, j int) bool { return order(out[i], out[j]) < 0 })
	}
	return out
}

// Clear drops every leg, account and index bucket.
func (r *Registry) Clear() {
	r.accounts.Clear()
	for _, store := range r.legs {
		store.Clear()
	}
	r.index.Clear()
}
