package postgres

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditCompressRoundTrip(t *testing.T) {
	svc, err := NewAuditService(nil)
	require.NoError(t, err)

	payload, err := json.Marshal(map[string]string{
		"name": string(bytes.Repeat([]byte("x"), 20*1024)),
	})
	require.NoError(t, err)

	entry := AuditEntry{Changes: payload}
	svc.compress(&entry)

	assert.Equal(t, CompressionZstd, entry.CompressionAlgo)
	assert.Nil(t, entry.Changes)
	require.NotEmpty(t, entry.ChangesCompressed)
	assert.Less(t, len(entry.ChangesCompressed), len(payload))

	restored, err := svc.Decompress(entry)
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage(payload), restored)
}

func TestAuditSmallChangesStayUncompressed(t *testing.T) {
	svc, err := NewAuditService(nil)
	require.NoError(t, err)

	payload := json.RawMessage(`{"name":"Rice"}`)
	entry := AuditEntry{Changes: payload}
	svc.compress(&entry)

	assert.Equal(t, CompressionNone, entry.CompressionAlgo)
	assert.Empty(t, entry.ChangesCompressed)

	restored, err := svc.Decompress(entry)
	require.NoError(t, err)
	assert.Equal(t, payload, restored)
}
