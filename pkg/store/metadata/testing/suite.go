package testing

import (
	"testing"

	"github.com/chineduCoded/alx-files-manager/pkg/store/metadata"
)

// StoreTestSuite is a test suite for MetadataStore implementations. It tests
// the interface contract, not implementation details, making it reusable
// across different implementations (memory, badger, etc.).
type StoreTestSuite struct {
	// NewStore is a factory function that creates a fresh MetadataStore
	// instance for each test. This ensures test isolation.
	NewStore func(t *testing.T) metadata.MetadataStore
}

// Run executes all tests in the suite.
func (suite *StoreTestSuite) Run(test *testing.T) {
	test.Run("Users", suite.RunUserTests)
	test.Run("Files", suite.RunFileTests)
	test.Run("Listing", suite.RunListingTests)
	test.Run("Healthcheck", suite.RunHealthcheckTests)
}
