package memory_test

import (
	"testing"

	"github.com/aretw0/previewkit/pkg/adapters/memory"
	"github.com/aretw0/previewkit/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunPreviewStoreContract(t, store)
}
