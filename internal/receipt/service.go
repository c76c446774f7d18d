package receipt

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// IDGenerator generates unique IDs for receipts
type IDGenerator interface {
	Generate() string
}

// Scorer computes the points a receipt is worth
type Scorer interface {
	Score(receipt Receipt) (int, error)
}

// uuidGenerator generates random (version 4) UUIDs
type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string {
	return uuid.NewString()
}

// Service handles receipt operations
type Service struct {
	store       Store
	scorer      Scorer
	idGenerator IDGenerator
}

// NewService creates a new Service with a UUID ID generator
func NewService(store Store, scorer Scorer) *Service {
	return NewServiceWithDeps(store, scorer, &uuidGenerator{})
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(store Store, scorer Scorer, idGen IDGenerator) *Service {
	return &Service{
		store:       store,
		scorer:      scorer,
		idGenerator: idGen,
	}
}

// ProcessReceipt stores a receipt under a freshly generated ID and returns
// the ID. The receipt is not validated; problems surface when it is scored.
func (s *Service) ProcessReceipt(receipt Receipt) (string, error) {
	id := s.idGenerator.Generate()
	if err := s.store.Save(id, receipt); err != nil {
		return "", fmt.Errorf("saving receipt: %w", err)
	}

	slog.Debug("Stored receipt", "id", id, "retailer", receipt.Retailer, "items", len(receipt.Items))
	return id, nil
}

// GetReceipt retrieves a receipt by ID
func (s *Service) GetReceipt(id string) (Receipt, error) {
	receipt, err := s.store.Get(id)
	if err != nil {
		return Receipt{}, fmt.Errorf("getting receipt: %w", err)
	}
	return receipt, nil
}

// Points scores the receipt stored under id. The score is computed on every
// call and never cached.
func (s *Service) Points(id string) (int, error) {
	receipt, err := s.GetReceipt(id)
	if err != nil {
		return 0, err
	}

	points, err := s.scorer.Score(receipt)
	if err != nil {
		return 0, fmt.Errorf("scoring receipt %s: %w", id, err)
	}
	return points, nil
}
