package memory

import (
	"testing"

	"github.com/chineduCoded/alx-files-manager/pkg/store/metadata"
	metadatatesting "github.com/chineduCoded/alx-files-manager/pkg/store/metadata/testing"
)

// TestMemoryMetadataStore runs the complete MetadataStore test suite
// against the in-memory implementation.
func TestMemoryMetadataStore(t *testing.T) {
	suite := &metadatatesting.StoreTestSuite{
		NewStore: func(t *testing.T) metadata.MetadataStore {
			return New()
		},
	}

	suite.Run(t)
}
