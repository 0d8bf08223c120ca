package hashutil_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/rohmanhakim/atcoder-cli/pkg/hashutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/blake3"
)

func TestHashBytes_KnownVectors_SHA256(t *testing.T) {
	vectors := []struct {
		input    string
		expected string
	}{
		{input: "", expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{input: "abc", expected: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	}

	for _, v := range vectors {
		result, err := hashutil.HashBytes([]byte(v.input), hashutil.HashAlgoSHA256)
		require.NoError(t, err)
		assert.Equal(t, v.expected, result, "SHA256 hash mismatch for input: %q", v.input)
	}
}

func TestHashBytes_BLAKE3(t *testing.T) {
	data := []byte("https%3A%2F%2Fatcoder.jp%2Fcontests%2Fabc100%2Ftasks%3Flang%3Den")

	result, err := hashutil.HashBytes(data, hashutil.HashAlgoBLAKE3)
	require.NoError(t, err)

	expected := blake3.Sum256(data)
	assert.Equal(t, hex.EncodeToString(expected[:]), result)
}

func TestHashBytes_UnsupportedAlgorithm(t *testing.T) {
	result, err := hashutil.HashBytes([]byte("test data"), "md4")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported hash algorithm")
	assert.Empty(t, result)
}

func TestNameForKey(t *testing.T) {
	name, err := hashutil.NameForKey(strings.Repeat("k", 500), hashutil.HashAlgoBLAKE3)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "blake3-"))
	assert.Len(t, name, len("blake3-")+64)

	again, err := hashutil.NameForKey(strings.Repeat("k", 500), hashutil.HashAlgoBLAKE3)
	require.NoError(t, err)
	assert.Equal(t, name, again)

	other, err := hashutil.NameForKey(strings.Repeat("k", 501), hashutil.HashAlgoBLAKE3)
	require.NoError(t, err)
	assert.NotEqual(t, name, other)
}
