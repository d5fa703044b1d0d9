// Package test provides the server harness for handler tests. It wires
// the full component graph against in-memory storage so tests run
// without PostgreSQL or Redis.
package test

import (
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/iqlusioninc/crates-sub000/internal/api"
	"github.com/iqlusioninc/crates-sub000/internal/api/router"
	"github.com/iqlusioninc/crates-sub000/internal/chain"
	"github.com/iqlusioninc/crates-sub000/internal/config"
	"github.com/iqlusioninc/crates-sub000/internal/hdwallet"
	"github.com/iqlusioninc/crates-sub000/internal/infra/key"
	"github.com/iqlusioninc/crates-sub000/internal/infra/storage"
	"github.com/iqlusioninc/crates-sub000/internal/metrics"
)

// WithTestServer runs closure against a fully routed server backed by
// in-memory components.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Echo.EnableLoggerMiddleware = false
	cfg.Wallet.Network = "mainnet"

	vault, err := storage.NewFileSystemSeedVault(t.TempDir(), hex.EncodeToString(make([]byte, 32)))
	require.NoError(t, err)

	chains, err := chain.NewRegistry(chain.NewBitcoinEncoder(nil), chain.NewEthereumEncoder())
	require.NoError(t, err)

	keyService, err := key.NewService(
		storage.NewInMemoryStore(),
		vault,
		nil,
		chains,
		hdwallet.NewSecp256k1Backend(),
		metrics.NewWithRegistry(prometheus.NewRegistry()),
		cfg.Wallet.Network,
	)
	require.NoError(t, err)

	s := &api.Server{
		Config:     cfg,
		KeyService: keyService,
	}
	router.Init(s)

	closure(s)
}

// PerformRequest sends a JSON request through the server's echo
// instance and returns the recorder.
func PerformRequest(t *testing.T, s *api.Server, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	res := httptest.NewRecorder()
	s.Echo.ServeHTTP(res, req)
	return res
}

// CreateTestRootKey creates a root key from the deterministic test
// mnemonic and returns its ID.
func CreateTestRootKey(t *testing.T, s *api.Server) string {
	t.Helper()

	result, err := s.KeyService.CreateRootKey(t.Context(), &key.CreateRootKeyRequest{
		Mnemonic: TestMnemonic,
	})
	require.NoError(t, err)
	return result.KeyID
}

// TestMnemonic is the well-known deterministic BIP-39 mnemonic used
// across handler tests.
const TestMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
