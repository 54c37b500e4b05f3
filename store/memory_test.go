package store_test

import (
	"testing"

	"github.com/effective-security/finmcp/store"
	"github.com/effective-security/finmcp/store/storetest"
)

func Test_MemoryStore(t *testing.T) {
	s := store.NewMemoryStore()
	defer s.Close()
	storetest.Run(t, s)
}
