package user

import (
	"fmt"
	"time"

	"github.com/theoremus-urban-solutions/travel-registry/travel"
)

// Account is a registered user, identified by email. An account owns its
// list of booked itineraries; the itineraries reference legs owned by the
// travel registry.
type Account struct {
	Email      string
	FirstNames string
	LastName   string
	Address    string
	CreditCard string
	Expiry     time.Time

	booked []*travel.Itinerary
}

// NewAccount builds an account with no bookings.
func NewAccount(email, firstNames, lastName, address, creditCard string, expiry time.Time) *Account {
	return &Account{
		Email:      email,
		FirstNames: firstNames,
		LastName:   lastName,
		Address:    address,
		CreditCard: creditCard,
		Expiry:     expiry,
	}
}

// Key returns the account's email, its store identity.
func (a *Account) Key() string { return a.Email }

// SetKey rewrites the email. Used by the store's rename operation only.
func (a *Account) SetKey(email string) { a.Email = email }

// Update overwrites the profile fields, leaving identity and booked
// itineraries untouched.
func (a *Account) Update(other *Account) {
	a.FirstNames = other.FirstNames
	a.LastName = other.LastName
	a.Address = other.Address
	a.CreditCard = other.CreditCard
	a.Expiry = other.Expiry
}

// Name returns the display name.
func (a *Account) Name() string { return a.FirstNames + " " + a.LastName }

// Booked returns the booked itineraries in booking order. The slice must
// not be mutated.
func (a *Account) Booked() []*travel.Itinerary { return a.booked }

// HasBooked reports whether an itinerary structurally equal to it has
// been booked.
func (a *Account) HasBooked(it *travel.Itinerary) bool {
	for _, b := range a.booked {
		if b.Equal(it) {
			return true
		}
	}
	return false
}

// Book records the itinerary and takes a seat on each of its legs.
// Booking the same itinerary twice is a no-op.
func (a *Account) Book(it *travel.Itinerary) {
	if it == nil || it.Empty() || a.HasBooked(it) {
		return
	}
	a.booked = append(a.booked, it)
	it.Book()
}

// Cancel drops the itinerary and releases its seats. Unknown itineraries
// are ignored.
func (a *Account) Cancel(it *travel.Itinerary) {
	for i, b := range a.booked {
		if b.Equal(it) {
			a.booked = append(a.booked[:i], a.booked[i+1:]...)
			b.Unbook()
			return
		}
	}
}

// StripLeg removes every booked itinerary referencing the leg's identity,
// releasing each one's seats first. Called by the registry when a leg is
// removed from the system.
func (a *Account) StripLeg(leg *travel.Leg) {
	kept := a.booked[:0]
	for _, b := range a.booked {
		if b.ContainsLeg(leg) {
			b.Unbook()
			continue
		}
		kept = append(kept, b)
	}
	a.booked = kept
}

// Line renders the single-line form
// lastName,firstNames,email,address,creditCard,expiry.
func (a *Account) Line() string {
	return fmt.Sprintf("%s,%s,%s,%s,%s,%s", a.LastName, a.FirstNames, a.Email,
		a.Address, a.CreditCard, travel.FormatDate(a.Expiry))
}

func (a *Account) String() string { return a.Line() }
