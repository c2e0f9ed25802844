package seed

import (
	"errors"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"

	"indexBenchmark/models"
)

// ErrUniqueExhausted is returned when the generator cannot find a fresh email
// within its retry budget.
var ErrUniqueExhausted = errors.New("unique email generator exhausted")

// Generator produces synthetic users.
type Generator interface {
	Next() (models.User, error)
}

// maxUniqueRetries bounds how many times a colliding email is regenerated.
const maxUniqueRetries = 1000

// FakeGenerator draws names, emails and bios from gofakeit.
// Emails are unique for the lifetime of the generator; it is not safe for
// concurrent use.
type FakeGenerator struct {
	faker *gofakeit.Faker
	seen  map[string]struct{}
}

// NewFakeGenerator returns a generator seeded with seed; 0 picks a random seed.
func NewFakeGenerator(seed uint64) *FakeGenerator {
	return &FakeGenerator{
		faker: gofakeit.New(seed),
		seen:  make(map[string]struct{}),
	}
}

func (g *FakeGenerator) Next() (models.User, error) {
	email, err := g.uniqueEmail()
	if err != nil {
		return models.User{}, err
	}
	return models.User{
		FullName: g.faker.Name(),
		Email:    email,
		Bio:      g.faker.Paragraph(1, 4, 10, " "),
	}, nil
}

func (g *FakeGenerator) uniqueEmail() (string, error) {
	for i := 0; i < maxUniqueRetries; i++ {
		e := g.faker.Email()
		if _, dup := g.seen[e]; dup {
			continue
		}
		g.seen[e] = struct{}{}
		return e, nil
	}
	return "", fmt.Errorf("%w after %d attempts (%d emails issued)", ErrUniqueExhausted, maxUniqueRetries, len(g.seen))
}

// Issued returns how many unique emails have been handed out.
func (g *FakeGenerator) Issued() int { return len(g.seen) }
