package receipt

import "sync"

// Store defines the interface for receipt storage operations
type Store interface {
	// Save stores a receipt under id
	Save(id string, receipt Receipt) error

	// Get retrieves the receipt stored under id
	Get(id string) (Receipt, error)

	// Len returns the number of stored receipts
	Len() int
}

// MemoryStore implements the Store interface with a map guarded by a
// read/write mutex. Entries are never updated or removed.
type MemoryStore struct {
	mu       sync.RWMutex
	receipts map[string]Receipt
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		receipts: make(map[string]Receipt),
	}
}

// Save stores a copy of receipt under id
func (m *MemoryStore) Save(id string, receipt Receipt) error {
	c := receipt.clone()

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.receipts[id]; ok {
		return ErrDuplicateID
	}
	m.receipts[id] = c
	return nil
}

// Get returns a copy of the receipt stored under id
func (m *MemoryStore) Get(id string) (Receipt, error) {
	m.mu.RLock()
	receipt, ok := m.receipts[id]
	m.mu.RUnlock()

	if !ok {
		return Receipt{}, &NotFoundError{ID: id}
	}
	return receipt.clone(), nil
}

// Len returns the number of stored receipts
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.receipts)
}
