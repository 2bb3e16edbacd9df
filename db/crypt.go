package db

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"io"

	"emperror.dev/errors"
)

const ErrCiphertextTooShort = errors.Sentinel("ciphertext too short")

// Encrypt encrypts data with AES-GCM. The nonce is prepended to the returned ciphertext.
func Encrypt(data []byte, key [32]byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Wrap(err, "generating nonce")
	}

	return gcm.Seal(nonce, nonce, data, nil), nil
}

// Decrypt decrypts data encrypted by Encrypt.
func Decrypt(data []byte, key [32]byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(data) < gcm.NonceSize() {
		return nil, ErrCiphertextTooShort
	}

	nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	out, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, errors.Wrap(err, "decrypting")
	}
	return out, nil
}

func newGCM(key [32]byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, errors.Wrap(err, "creating cipher")
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "creating gcm")
	}
	return gcm, nil
}
