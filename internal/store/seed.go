package store

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"contactsearch/internal/domain"
)

// Seed is the YAML seed file layout
type Seed struct {
	Contacts []SeedContact `yaml:"contacts"`
}

// SeedContact is one contact and the cases that reference it
type SeedContact struct {
	ID           string     `yaml:"id,omitempty"`
	Name         string     `yaml:"name"`
	Email        string     `yaml:"email,omitempty"`
	MobilePhone  string     `yaml:"mobile_phone,omitempty"`
	BillingCity  string     `yaml:"billing_city,omitempty"`
	BillingState string     `yaml:"billing_state,omitempty"`
	Cases        []SeedCase `yaml:"cases,omitempty"`
}

// SeedCase is a case in a seed file
type SeedCase struct {
	ID      string `yaml:"id,omitempty"`
	Subject string `yaml:"subject"`
}

// LoadSeed decodes a seed document
func LoadSeed(r io.Reader) (*Seed, error) {
	var seed Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}
	return &seed, nil
}

// LoadSeedFile decodes the seed file at path
func LoadSeedFile(path string) (*Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return LoadSeed(f)
}

// Apply inserts every contact and case of the seed, returning the number of
// contacts and cases created
func (s *Seed) Apply(ctx context.Context, st Store) (contacts, cases int, err error) {
	for _, sc := range s.Contacts {
		row := domain.ContactRow{
			ID:           sc.ID,
			Name:         sc.Name,
			Email:        sc.Email,
			MobilePhone:  sc.MobilePhone,
			BillingCity:  sc.BillingCity,
			BillingState: sc.BillingState,
		}
		rec := row.Fields()
		if row.ID == "" {
			delete(rec, domain.FieldID)
		}
		id, err := st.CreateRecord(ctx, rec)
		if err != nil {
			return contacts, cases, fmt.Errorf("seed contact %q: %w", sc.Name, err)
		}
		contacts++

		for _, c := range sc.Cases {
			if _, err := st.AddCase(ctx, domain.Case{ID: c.ID, Subject: c.Subject, ContactID: id}); err != nil {
				return contacts, cases, fmt.Errorf("seed case %q: %w", c.Subject, err)
			}
			cases++
		}
	}
	return contacts, cases, nil
}
