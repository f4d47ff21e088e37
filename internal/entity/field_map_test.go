package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldMapRoundTripKeepsOrder(t *testing.T) {
	payload := []byte(`{"vendor":"ACME Corp","invoice_number":"INV-001","date":"2026-01-15"}`)

	var m FieldMap
	require.NoError(t, json.Unmarshal(payload, &m))

	require.Len(t, m, 3)
	assert.Equal(t, "vendor", m[0].Key)
	assert.Equal(t, "invoice_number", m[1].Key)
	assert.Equal(t, "date", m[2].Key)

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, string(payload), string(out))
}

func TestFieldMapGet(t *testing.T) {
	m := FieldMap{{Key: "total", Value: "1250.00"}}

	v, ok := m.Get("total")
	require.True(t, ok)
	assert.Equal(t, "1250.00", v)

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestFieldMapSet(t *testing.T) {
	m := FieldMap{{Key: "total", Value: "1250.00"}}

	m.Set("total", "1300.00")
	require.Len(t, m, 1)
	v, _ := m.Get("total")
	assert.Equal(t, "1300.00", v)

	m.Set("currency", "USD")
	require.Len(t, m, 2)
	assert.Equal(t, "currency", m[1].Key, "new keys append at the end")
}

func TestFieldMapCloneIsIndependent(t *testing.T) {
	m := FieldMap{{Key: "total", Value: "1250.00"}}
	clone := m.Clone()

	clone.Set("total", "0.00")
	v, _ := m.Get("total")
	assert.Equal(t, "1250.00", v)
}

func TestFieldMapUnmarshalRejectsNonObject(t *testing.T) {
	var m FieldMap
	assert.Error(t, json.Unmarshal([]byte(`["not","an","object"]`), &m))
}

func TestFieldMapMarshalEmpty(t *testing.T) {
	out, err := json.Marshal(FieldMap{})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))
}
