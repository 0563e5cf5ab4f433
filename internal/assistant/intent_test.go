package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		expected  Classification
	}{
		{
			name:      "category with category keyword",
			utterance: "What products are in category electronics?",
			expected:  Classification{Intent: IntentProductsByCategory, Param: "electronics"},
		},
		{
			name:      "category with under keyword",
			utterance: "show me products under groceries",
			expected:  Classification{Intent: IntentProductsByCategory, Param: "groceries"},
		},
		{
			name:      "category with items instead of products",
			utterance: "items under toys please",
			expected:  Classification{Intent: IntentProductsByCategory, Param: "toys"},
		},
		{
			name:      "count via how many",
			utterance: "How many products do you have?",
			expected:  Classification{Intent: IntentProductCount},
		},
		{
			name:      "count via total products",
			utterance: "total products in store",
			expected:  Classification{Intent: IntentProductCount},
		},
		{
			name:      "list via available products",
			utterance: "What are the available products?",
			expected:  Classification{Intent: IntentProductList},
		},
		{
			name:      "price with fragment",
			utterance: "What is the price of Milk?",
			expected:  Classification{Intent: IntentProductPrice, Param: "milk?"},
		},
		{
			name:      "price via how much is",
			utterance: "how much is bread",
			expected:  Classification{Intent: IntentProductPrice, Param: "bread"},
		},
		{
			name:      "price keyword without fragment",
			utterance: "price of",
			expected:  Classification{Intent: IntentProductPrice, Param: ""},
		},
		{
			name:      "unrecognized",
			utterance: "tell me a joke",
			expected:  Classification{Intent: IntentUnrecognized},
		},
		{
			name:      "empty utterance",
			utterance: "",
			expected:  Classification{Intent: IntentUnrecognized},
		},
		{
			name: "category wins over count",
			// Matches both the category and count predicates; category is
			// evaluated first.
			utterance: "how many products are in category electronics",
			expected:  Classification{Intent: IntentProductsByCategory, Param: "electronics"},
		},
		{
			name:      "count wins over list",
			utterance: "how many available products are there",
			expected:  Classification{Intent: IntentProductCount},
		},
		{
			name: "under alone is not a category query",
			// The category intent needs both a products/items word and a
			// category/under word.
			utterance: "under electronics",
			expected:  Classification{Intent: IntentUnrecognized},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.utterance))
		})
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	c := Classify("HOW MANY PRODUCTS?")
	assert.Equal(t, IntentProductCount, c.Intent)

	c = Classify("Products Under ELECTRONICS")
	assert.Equal(t, IntentProductsByCategory, c.Intent)
	assert.Equal(t, "electronics", c.Param)
}
