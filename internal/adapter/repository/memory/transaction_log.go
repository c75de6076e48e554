package memory

import (
	"context"
	"sort"

	"github.com/api-sage/bank-ledger-service/internal/domain"
)

// The transaction log shares the store's state: appends happen only
// inside AtomicUpdate, so a record is visible if and only if its balance
// mutation is.

func (s *Store) ListByCustomer(_ context.Context, customerID string, page, size int) (domain.Page[domain.Transaction], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owned := make(map[string]struct{}, len(s.customerIndex[customerID]))
	for _, number := range s.customerIndex[customerID] {
		owned[number] = struct{}{}
	}

	matched := make([]domain.Transaction, 0)
	for _, record := range s.transactions {
		if _, ok := owned[record.SenderAccountNumber]; ok {
			matched = append(matched, record)
		}
	}

	return paginate(matched, page, size), nil
}

func (s *Store) ListAll(_ context.Context, page, size int) (domain.Page[domain.Transaction], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.Transaction, len(s.transactions))
	copy(matched, s.transactions)

	return paginate(matched, page, size), nil
}

// paginate orders most-recent-first by transaction ID so repeated calls
// page through a stable sequence.
func paginate(records []domain.Transaction, page, size int) domain.Page[domain.Transaction] {
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID > records[j].ID
	})

	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}

	total := int64(len(records))
	start := page * size
	if start > len(records) {
		start = len(records)
	}
	end := start + size
	if end > len(records) {
		end = len(records)
	}

	content := make([]domain.Transaction, end-start)
	copy(content, records[start:end])

	return domain.NewPage(content, page, size, total)
}
