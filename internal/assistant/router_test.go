package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"shopmate-api/internal/common/logger"
	"shopmate-api/internal/models"
)

// stubStore returns canned results and counts lookups per method.
type stubStore struct {
	names    []string
	count    int
	product  *models.Product
	err      error
	calls    map[string]int
	lastArgs map[string]string
}

func newStubStore() *stubStore {
	return &stubStore{calls: map[string]int{}, lastArgs: map[string]string{}}
}

func (s *stubStore) NamesByCategory(ctx context.Context, category string) ([]string, error) {
	s.calls["NamesByCategory"]++
	s.lastArgs["NamesByCategory"] = category
	return s.names, s.err
}

func (s *stubStore) Count(ctx context.Context) (int, error) {
	s.calls["Count"]++
	return s.count, s.err
}

func (s *stubStore) ListNames(ctx context.Context, limit int) ([]string, error) {
	s.calls["ListNames"]++
	return s.names, s.err
}

func (s *stubStore) FindByName(ctx context.Context, fragment string) (*models.Product, error) {
	s.calls["FindByName"]++
	s.lastArgs["FindByName"] = fragment
	return s.product, s.err
}

func (s *stubStore) totalCalls() int {
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

func testRouter(t *testing.T, store *stubStore) *Router {
	t.Helper()
	config := &Config{Currency: "₹", ListLimit: 5, QueryTimeout: 5 * time.Second}
	return NewRouter(config, store, nil, logger.NewZapAdapter(zaptest.NewLogger(t)))
}

func TestRouterAnswer(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		setup     func(*stubStore)
		expected  string
		lookups   int
	}{
		{
			name:      "category with results",
			utterance: "what products are in category electronics",
			setup: func(s *stubStore) {
				s.names = []string{"Laptop", "Phone"}
			},
			expected: `Here are some products in "electronics": "Laptop", "Phone"`,
			lookups:  1,
		},
		{
			name:      "category with no results",
			utterance: "products under electronics",
			expected:  `No products found in category "electronics".`,
			lookups:   1,
		},
		{
			name:      "category lookup error degrades to not found",
			utterance: "products under toys",
			setup: func(s *stubStore) {
				s.err = errors.New("connection refused")
			},
			expected: `No products found in category "toys".`,
			lookups:  1,
		},
		{
			name:      "count",
			utterance: "how many products are there?",
			setup: func(s *stubStore) {
				s.count = 42
			},
			expected: "There are 42 product(s) in our database.",
			lookups:  1,
		},
		{
			name:      "count of zero is a real answer",
			utterance: "how many products are there?",
			expected:  "There are 0 product(s) in our database.",
			lookups:   1,
		},
		{
			name:      "count error",
			utterance: "number of products",
			setup: func(s *stubStore) {
				s.err = errors.New("timeout")
			},
			expected: ReplyCountError,
			lookups:  1,
		},
		{
			name:      "list with results",
			utterance: "list products",
			setup: func(s *stubStore) {
				s.names = []string{"Milk", "Bread"}
			},
			expected: `Here are some available products: "Milk", "Bread"`,
			lookups:  1,
		},
		{
			name:      "list empty",
			utterance: "what products do you have",
			expected:  ReplyNoProducts,
			lookups:   1,
		},
		{
			name:      "price with match",
			utterance: "price of milk",
			setup: func(s *stubStore) {
				s.product = &models.Product{Name: "Milk", Price: 40}
			},
			expected: `The price of "Milk" is ₹40.`,
			lookups:  1,
		},
		{
			name:      "price fractional",
			utterance: "cost of bread",
			setup: func(s *stubStore) {
				s.product = &models.Product{Name: "Bread", Price: 32.5}
			},
			expected: `The price of "Bread" is ₹32.5.`,
			lookups:  1,
		},
		{
			name:      "price no match",
			utterance: "price of unobtainium",
			expected:  `No product found matching "unobtainium".`,
			lookups:   1,
		},
		{
			name:      "price without product name issues no query",
			utterance: "price of",
			expected:  ReplyPricePrompt,
			lookups:   0,
		},
		{
			name:      "unrecognized gets help text",
			utterance: "tell me a joke",
			expected:  replyHelp,
			lookups:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStubStore()
			if tt.setup != nil {
				tt.setup(store)
			}
			router := testRouter(t, store)

			reply := router.Answer(context.Background(), tt.utterance)

			assert.Equal(t, tt.expected, reply)
			assert.Equal(t, tt.lookups, store.totalCalls(),
				"dispatch should issue at most one lookup")
		})
	}
}

func TestRouterAnswerRecoversFromPanic(t *testing.T) {
	router := testRouter(t, nil) // nil store panics on any lookup

	reply := router.Answer(context.Background(), "how many products are there?")

	assert.Equal(t, ReplyUnexpectedFailure, reply)
}

func TestRouterPassesExtractedParams(t *testing.T) {
	store := newStubStore()
	router := testRouter(t, store)

	router.Answer(context.Background(), "what products are in category Electronics")
	assert.Equal(t, "electronics", store.lastArgs["NamesByCategory"])

	router.Answer(context.Background(), "rate of basmati rice")
	assert.Equal(t, "basmati rice", store.lastArgs["FindByName"])
}
