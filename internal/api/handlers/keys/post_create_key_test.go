package keys_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-openapi/swag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iqlusioninc/crates-sub000/internal/api"
	"github.com/iqlusioninc/crates-sub000/internal/test"
	"github.com/iqlusioninc/crates-sub000/internal/types"
)

func TestPostCreateKey(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/keys", `{"mnemonic": "`+test.TestMnemonic+`"}`)
		require.Equal(t, http.StatusCreated, res.Code)

		var response types.CreateKeyResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &response))

		assert.Equal(t, test.TestMnemonic, swag.StringValue(response.Mnemonic))
		assert.Equal(t, "73c5da0a", swag.StringValue(response.Fingerprint))
		assert.NotEmpty(t, swag.StringValue(response.KeyID))
	})
}

func TestPostCreateKeyGeneratesMnemonic(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/keys", `{}`)
		require.Equal(t, http.StatusCreated, res.Code)

		var response types.CreateKeyResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &response))
		assert.NotEmpty(t, swag.StringValue(response.Mnemonic))
	})
}

func TestPostCreateKeyRejectsBadMnemonic(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/keys", `{"mnemonic": "not a valid mnemonic"}`)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}

func TestPostCreateKeyRejectsUnsafeKeyID(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/keys",
			`{"key_id": "../../etc/escaped", "mnemonic": "`+test.TestMnemonic+`"}`)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}

func TestGetKeys(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		keyID := test.CreateTestRootKey(t, s)

		res := test.PerformRequest(t, s, "GET", "/api/v1/keys", "")
		require.Equal(t, http.StatusOK, res.Code)

		var response types.RootKeyListResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &response))
		require.Len(t, response.Keys, 1)
		assert.Equal(t, keyID, swag.StringValue(response.Keys[0].KeyID))

		res = test.PerformRequest(t, s, "GET", "/api/v1/keys/"+keyID, "")
		require.Equal(t, http.StatusOK, res.Code)

		res = test.PerformRequest(t, s, "GET", "/api/v1/keys/unknown", "")
		assert.Equal(t, http.StatusNotFound, res.Code)
	})
}

func TestDeleteKey(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		keyID := test.CreateTestRootKey(t, s)

		res := test.PerformRequest(t, s, "DELETE", "/api/v1/keys/"+keyID, "")
		require.Equal(t, http.StatusNoContent, res.Code)

		res = test.PerformRequest(t, s, "GET", "/api/v1/keys/"+keyID, "")
		assert.Equal(t, http.StatusNotFound, res.Code)

		res = test.PerformRequest(t, s, "DELETE", "/api/v1/keys/"+keyID, "")
		assert.Equal(t, http.StatusNotFound, res.Code)
	})
}
