package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	entry := map[string]interface{}{
		"title":   "A quiet morning",
		"content": "Woke up early and watched the rain. 今天心情不错。",
		"tags":    []interface{}{"morning", "rain"},
	}
	raw, err := json.Marshal(entry)
	require.NoError(t, err)

	encrypted, err := EncryptContent(string(raw), "correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, string(raw), encrypted)

	decrypted, err := DecryptContent(encrypted, "correct horse battery staple")
	require.NoError(t, err)

	var restored map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(decrypted), &restored))
	assert.Equal(t, entry, restored)
}

func TestDecryptWrongPasswordFails(t *testing.T) {
	encrypted, err := EncryptContent("secret diary entry", "password-a")
	require.NoError(t, err)

	_, err = DecryptContent(encrypted, "password-b")
	assert.Error(t, err)
}

func TestEncryptSamePlaintextDiffers(t *testing.T) {
	// 随机salt和nonce保证相同明文每次密文不同
	first, err := EncryptContent("same text", "pw")
	require.NoError(t, err)
	second, err := EncryptContent("same text", "pw")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDecryptGarbageFails(t *testing.T) {
	_, err := DecryptContent("not base64 at all!!", "pw")
	assert.Error(t, err)

	_, err = DecryptContent("c2hvcnQ=", "pw")
	assert.Error(t, err)
}

func TestEncryptEmptyContent(t *testing.T) {
	encrypted, err := EncryptContent("", "pw")
	require.NoError(t, err)

	decrypted, err := DecryptContent(encrypted, "pw")
	require.NoError(t, err)
	assert.Equal(t, "", decrypted)
}
