// Package uuid generates battle run identifiers behind an interface so tests
// can pin them.
package uuid

//go:generate mockgen -destination=mocks/mock_generator.go -package=mocks -source=uuid.go

import (
	"github.com/google/uuid"
)

// Generator produces unique identifiers
type Generator interface {
	New() string
}

type randomGenerator struct{}

// NewGenerator returns a Generator producing random (version 4) UUID strings
func NewGenerator() Generator {
	return randomGenerator{}
}

func (randomGenerator) New() string {
	return uuid.NewString()
}
