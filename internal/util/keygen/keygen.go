package keygen

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/ssh"
)

// DefaultBits is the RSA size used for generated stack keys.
const DefaultBits = 4096

// KeyPair holds an RSA key pair in ready-to-use formats.
type KeyPair struct {
	// PrivateKey is the RSA private key in PEM-encoded PKCS#1 format.
	PrivateKey []byte
	// PublicKey is the public key in OpenSSH authorized_keys format.
	PublicKey []byte
}

// GenerateRSAKeyPair generates a new RSA key pair with the specified bit size.
func GenerateRSAKeyPair(bits int) (*KeyPair, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA private key: %w", err)
	}
	if err := privateKey.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate RSA private key: %w", err)
	}

	privateKeyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})

	publicKey, err := ssh.NewPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH public key: %w", err)
	}

	return &KeyPair{
		PrivateKey: privateKeyPEM,
		PublicKey:  ssh.MarshalAuthorizedKey(publicKey),
	}, nil
}

// Write stores the pair at privatePath and privatePath+".pub".
func (kp *KeyPair) Write(privatePath string) error {
	if err := os.WriteFile(privatePath, kp.PrivateKey, 0600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}
	if err := os.WriteFile(privatePath+".pub", kp.PublicKey, 0644); err != nil {
		return fmt.Errorf("failed to write public key: %w", err)
	}
	return nil
}

// LoadOrGenerate returns the key pair stored at privatePath, creating and
// writing a new one if the private key does not exist yet.
func LoadOrGenerate(privatePath string, bits int) (*KeyPair, bool, error) {
	priv, err := os.ReadFile(privatePath)
	if err == nil {
		pub, err := PublicKeyFromPrivate(priv)
		if err != nil {
			return nil, false, err
		}
		return &KeyPair{PrivateKey: priv, PublicKey: pub}, false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, false, fmt.Errorf("failed to read private key: %w", err)
	}

	kp, err := GenerateRSAKeyPair(bits)
	if err != nil {
		return nil, false, err
	}
	if err := kp.Write(privatePath); err != nil {
		return nil, false, err
	}
	return kp, true, nil
}

// PublicKeyFromPrivate derives the authorized_keys line from a PEM private key.
func PublicKeyFromPrivate(privatePEM []byte) ([]byte, error) {
	signer, err := ssh.ParsePrivateKey(privatePEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return ssh.MarshalAuthorizedKey(signer.PublicKey()), nil
}

// Fingerprint returns the MD5 fingerprint Hetzner Cloud reports for a public key.
func Fingerprint(authorizedKey []byte) (string, error) {
	pub, _, _, _, err := ssh.ParseAuthorizedKey(authorizedKey)
	if err != nil {
		return "", fmt.Errorf("failed to parse public key: %w", err)
	}
	return ssh.FingerprintLegacyMD5(pub), nil
}

// Normalize trims the trailing newline and comment-free whitespace of an
// authorized_keys line.
func Normalize(authorizedKey []byte) string {
	return strings.TrimSpace(string(authorizedKey))
}
