package backup

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/argon2"
)

// Encrypted snapshots are [16-byte salt][12-byte nonce][AES-256-GCM
// ciphertext], with the key derived from the passphrase via Argon2id.
const (
	saltSize  = 16
	nonceSize = 12
	keySize   = 32
	argonTime = 3
	argonMem  = 64 * 1024
	argonPar  = 4
)

func newAEAD(passphrase string, salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey([]byte(passphrase), salt, argonTime, argonMem, argonPar, keySize)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	return cipher.NewGCM(block)
}

// EncryptFile seals src into dst with a fresh salt and nonce.
func EncryptFile(src, dst, passphrase string) error {
	plaintext, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	header := make([]byte, saltSize+nonceSize)
	if _, err := io.ReadFull(rand.Reader, header); err != nil {
		return fmt.Errorf("random header: %w", err)
	}
	salt, nonce := header[:saltSize], header[saltSize:]

	aead, err := newAEAD(passphrase, salt)
	if err != nil {
		return err
	}

	out := aead.Seal(header, nonce, plaintext, nil)
	if err := os.WriteFile(dst, out, 0600); err != nil {
		return fmt.Errorf("write encrypted snapshot: %w", err)
	}
	return nil
}

// DecryptFile opens a sealed snapshot at src and writes the plaintext to dst.
func DecryptFile(src, dst, passphrase string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read encrypted snapshot: %w", err)
	}
	if len(data) < saltSize+nonceSize {
		return fmt.Errorf("encrypted snapshot truncated")
	}

	salt := data[:saltSize]
	nonce := data[saltSize : saltSize+nonceSize]
	ciphertext := data[saltSize+nonceSize:]

	aead, err := newAEAD(passphrase, salt)
	if err != nil {
		return err
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return fmt.Errorf("decrypt snapshot: %w", err)
	}

	if err := os.WriteFile(dst, plaintext, 0600); err != nil {
		return fmt.Errorf("write decrypted snapshot: %w", err)
	}
	return nil
}
