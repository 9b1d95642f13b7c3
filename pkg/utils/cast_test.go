package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeCast(t *testing.T) {
	cast, err := SafeCast[int](12334)
	require.NoError(t, err)
	assert.Equal(t, 12334, cast)

	_, err = SafeCast[string](nil)
	assert.True(t, errors.Is(err, ErrNilParam))

	_, err = SafeCast[string](10)
	assert.EqualError(t, err, "cast error: got type int, want type string")
}

func TestMustMarshal(t *testing.T) {
	type payload struct {
		Hash string `json:"hash"`
	}

	assert.JSONEq(t, `{"hash":"0x01"}`, string(MustMarshal(payload{Hash: "0x01"})))
	assert.Nil(t, MustMarshal(make(chan int)))
}

func TestUniqueBy(t *testing.T) {
	type transfer struct {
		hash  string
		block int
	}

	in := []transfer{{"a", 3}, {"b", 2}, {"a", 1}, {"c", 1}, {"b", 0}}
	out := UniqueBy(in, func(t transfer) string { return t.hash })

	assert.Equal(t, []transfer{{"a", 3}, {"b", 2}, {"c", 1}}, out)
	assert.Empty(t, UniqueBy([]transfer{}, func(t transfer) string { return t.hash }))
}
