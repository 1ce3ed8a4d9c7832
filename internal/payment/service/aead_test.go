package service

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myfarmstand/paymentguard/internal/payment/domain"
)

func TestNewAEAD(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	t.Run("creates AES-GCM cipher", func(t *testing.T) {
		aead, err := NewAEAD(key, domain.AESGCM)
		require.NoError(t, err)

		_, ok := aead.(*AESGCMCipher)
		assert.True(t, ok)
	})

	t.Run("creates ChaCha20-Poly1305 cipher", func(t *testing.T) {
		aead, err := NewAEAD(key, domain.ChaCha20)
		require.NoError(t, err)

		_, ok := aead.(*ChaCha20Poly1305Cipher)
		assert.True(t, ok)
	})

	t.Run("rejects unsupported algorithm", func(t *testing.T) {
		_, err := NewAEAD(key, domain.Algorithm("unsupported"))
		assert.ErrorIs(t, err, domain.ErrUnsupportedAlgorithm)
	})

	t.Run("rejects invalid key sizes", func(t *testing.T) {
		for _, n := range []int{0, 16, 31, 33, 64} {
			_, err := NewAEAD(make([]byte, n), domain.AESGCM)
			assert.ErrorIs(t, err, domain.ErrInvalidKeySize, "key size %d", n)
		}
	})
}

func TestAEAD_EncryptDecrypt(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	for _, alg := range []domain.Algorithm{domain.AESGCM, domain.ChaCha20} {
		t.Run(string(alg), func(t *testing.T) {
			aead, err := NewAEAD(key, alg)
			require.NoError(t, err)

			plaintext := []byte("sensitive payment payload")

			ciphertext, nonce, err := aead.Encrypt(plaintext)
			require.NoError(t, err)
			assert.Len(t, nonce, aead.NonceSize())
			assert.NotEqual(t, plaintext, ciphertext)

			got, err := aead.Decrypt(ciphertext, nonce)
			require.NoError(t, err)
			assert.Equal(t, plaintext, got)
		})

		t.Run(string(alg)+" rejects wrong nonce", func(t *testing.T) {
			aead, err := NewAEAD(key, alg)
			require.NoError(t, err)

			ciphertext, nonce, err := aead.Encrypt([]byte("payload"))
			require.NoError(t, err)

			wrong := make([]byte, len(nonce))
			copy(wrong, nonce)
			wrong[0] ^= 0xff

			_, err = aead.Decrypt(ciphertext, wrong)
			assert.Error(t, err)
		})
	}
}
