package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manjiriciklum/WellnessSage-sub000/models"
)

func testEncryptor(t *testing.T) *Encryptor {
	t.Helper()
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	enc, err := New(key)
	require.NoError(t, err)
	return enc
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	enc := testEncryptor(t)
	for _, plaintext := range []string{
		"",
		"hello",
		`{"stepsGoal":10000,"sleepGoal":8}`,
		"multi\nline\twith unicode: émojis 🏃",
	} {
		sealed, err := enc.Encrypt(plaintext)
		require.NoError(t, err)
		assert.True(t, sealed.Sealed())

		opened, err := enc.Decrypt(sealed)
		require.NoError(t, err)
		assert.Equal(t, plaintext, opened)
	}
}

func TestDecryptDetectsTampering(t *testing.T) {
	enc := testEncryptor(t)
	sealed, err := enc.Encrypt("sensitive symptoms")
	require.NoError(t, err)

	flipFirstBit := func(hexStr string) string {
		raw, err := hex.DecodeString(hexStr)
		require.NoError(t, err)
		raw[0] ^= 0x01
		return hex.EncodeToString(raw)
	}

	tamperedData := sealed
	tamperedData.Data = flipFirstBit(sealed.Data)
	_, err = enc.Decrypt(tamperedData)
	assert.ErrorIs(t, err, ErrIntegrity)

	tamperedTag := sealed
	tamperedTag.AuthTag = flipFirstBit(sealed.AuthTag)
	_, err = enc.Decrypt(tamperedTag)
	assert.ErrorIs(t, err, ErrIntegrity)
}

func TestEncryptUsesFreshIV(t *testing.T) {
	enc := testEncryptor(t)
	first, err := enc.Encrypt("same plaintext")
	require.NoError(t, err)
	second, err := enc.Encrypt("same plaintext")
	require.NoError(t, err)

	assert.NotEqual(t, first.IV, second.IV)
	assert.NotEqual(t, first.Data, second.Data)
}

func TestDecryptRejectsIncompleteEnvelope(t *testing.T) {
	enc := testEncryptor(t)
	sealed, err := enc.Encrypt("payload")
	require.NoError(t, err)

	missingIV := sealed
	missingIV.IV = ""
	_, err = enc.Decrypt(missingIV)
	assert.ErrorIs(t, err, ErrMalformedEnvelope)

	missingTag := sealed
	missingTag.AuthTag = ""
	_, err = enc.Decrypt(missingTag)
	assert.ErrorIs(t, err, ErrMalformedEnvelope)

	missingData := sealed
	missingData.Data = ""
	_, err = enc.Decrypt(missingData)
	assert.ErrorIs(t, err, ErrMalformedEnvelope)
}

func TestDecryptPassesThroughPlainVariant(t *testing.T) {
	enc := testEncryptor(t)
	opened, err := enc.Decrypt(models.PlainField("legacy unencrypted value"))
	require.NoError(t, err)
	assert.Equal(t, "legacy unencrypted value", opened)
}

func TestDecryptFailsWithWrongKey(t *testing.T) {
	enc := testEncryptor(t)
	sealed, err := enc.Encrypt("cross-key")
	require.NoError(t, err)

	other, err := New(make([]byte, 32))
	require.NoError(t, err)
	_, err = other.Decrypt(sealed)
	assert.ErrorIs(t, err, ErrIntegrity)
}

func TestEncryptJSONRoundTrip(t *testing.T) {
	enc := testEncryptor(t)
	sealed, err := enc.EncryptJSON(map[string]any{"stepsGoal": 10000})
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, enc.DecryptJSON(sealed, &out))
	assert.EqualValues(t, 10000, out["stepsGoal"])
}

func TestNewRejectsBadKeySize(t *testing.T) {
	_, err := New([]byte("short"))
	assert.Error(t, err)
}
