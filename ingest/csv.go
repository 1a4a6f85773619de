package ingest

import (
	"encoding/csv"
	"io"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/theoremus-urban-solutions/travel-registry/travel"
	"github.com/theoremus-urban-solutions/travel-registry/user"
)

var validate = validator.New()

// legRecord mirrors one leg line:
// id,departure,arrival,provider,origin,destination,price,seats
type legRecord struct {
	ID          string `validate:"required"`
	Departure   string `validate:"required,datetime=2006-01-02 15:04"`
	Arrival     string `validate:"required,datetime=2006-01-02 15:04"`
	Provider    string `validate:"required"`
	Origin      string `validate:"required"`
	Destination string `validate:"required"`
	Price       string `validate:"required"`
	Seats       string `validate:"required,number"`
}

// accountRecord mirrors one user line:
// lastName,firstNames,email,address,creditCard,expiry
type accountRecord struct {
	LastName   string `validate:"required"`
	FirstNames string `validate:"required"`
	Email      string `validate:"required,email"`
	Address    string `validate:"required"`
	CreditCard string `validate:"required"`
	Expiry     string `validate:"required,datetime=2006-01-02"`
}

// ReadLegs parses leg records of one category from r. Lines that fail to
// parse or validate are skipped with a diagnostic.
func ReadLegs(r io.Reader, cat travel.Category) ([]*travel.Leg, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 8
	cr.TrimLeadingSpace = true
	var out []*travel.Leg
	line := 0
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		line++
		if err != nil {
			log.Printf("ingest: %s line %d: %v", cat, line, err)
			continue
		}
		rec := legRecord{
			ID:          fields[0],
			Departure:   fields[1],
			Arrival:     fields[2],
			Provider:    fields[3],
			Origin:      fields[4],
			Destination: fields[5],
			Price:       fields[6],
			Seats:       fields[7],
		}
		leg, err := buildLeg(cat, rec)
		if err != nil {
			log.Printf("ingest: %s line %d: %v", cat, line, err)
			continue
		}
		out = append(out, leg)
	}
}

func buildLeg(cat travel.Category, rec legRecord) (*travel.Leg, error) {
	if err := validate.Struct(rec); err != nil {
		return nil, err
	}
	start, err := travel.ParseDateTime(rec.Departure)
	if err != nil {
		return nil, err
	}
	end, err := travel.ParseDateTime(rec.Arrival)
	if err != nil {
		return nil, err
	}
	cost, err := decimal.NewFromString(rec.Price)
	if err != nil {
		return nil, err
	}
	seats, err := strconv.Atoi(rec.Seats)
	if err != nil {
		return nil, err
	}
	return travel.NewLeg(cat, rec.ID, start, end, rec.Origin, rec.Destination, cost, seats, rec.Provider), nil
}

// ReadAccounts parses account records from r. Lines that fail to parse or
// validate are skipped with a diagnostic.
func ReadAccounts(r io.Reader) ([]*user.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 6
	cr.TrimLeadingSpace = true
	var out []*user.Account
	line := 0
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		line++
		if err != nil {
			log.Printf("ingest: users line %d: %v", line, err)
			continue
		}
		rec := accountRecord{
			LastName:   fields[0],
			FirstNames: fields[1],
			Email:      fields[2],
			Address:    fields[3],
			CreditCard: fields[4],
			Expiry:     fields[5],
		}
		acct, err := buildAccount(rec)
		if err != nil {
			log.Printf("ingest: users line %d: %v", line, err)
			continue
		}
		out = append(out, acct)
	}
}

func buildAccount(rec accountRecord) (*user.Account, error) {
	if err := validate.Struct(rec); err != nil {
		return nil, err
	}
	expiry, err := travel.ParseDate(rec.Expiry)
	if err != nil {
		return nil, err
	}
	return user.NewAccount(rec.Email, rec.FirstNames, rec.LastName, rec.Address, rec.CreditCard, expiry), nil
}
