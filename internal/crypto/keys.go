package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
)

const rsaKeyBits = 2048

// SigningService — держатель RSA-пары для подписи и проверки QR-токенов.
// Приватный ключ используется только на стороне сервера и никогда не
// покидает процесс; наружу отдаётся только публичный PEM.
type SigningService struct {
	privateKeyPath string
	publicKeyPath  string

	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
}

// NewSigningService загружает ключи по заданным путям; при отсутствии
// любого из файлов идемпотентно генерирует новую пару (PKCS#8 + SPKI,
// PEM). Ошибка здесь фатальна для старта сервиса.
func NewSigningService(privateKeyPath, publicKeyPath string) (*SigningService, error) {
	s := &SigningService{privateKeyPath: privateKeyPath, publicKeyPath: publicKeyPath}
	if err := s.ensureKeys(); err != nil {
		return nil, fmt.Errorf("ensure rsa keys: %w", err)
	}
	if err := s.loadKeys(); err != nil {
		return nil, fmt.Errorf("load rsa keys: %w", err)
	}
	return s, nil
}

func (s *SigningService) ensureKeys() error {
	_, privErr := os.Stat(s.privateKeyPath)
	_, pubErr := os.Stat(s.publicKeyPath)
	if privErr == nil && pubErr == nil {
		return nil
	}
	return s.generateKeys()
}

func (s *SigningService) generateKeys() error {
	for _, p := range []string{s.privateKeyPath, s.publicKeyPath} {
		if dir := filepath.Dir(p); dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return err
			}
		}
	}

	key, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return err
	}

	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return err
	}
	privPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})
	if err := os.WriteFile(s.privateKeyPath, privPEM, 0o600); err != nil {
		return err
	}

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return err
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	return os.WriteFile(s.publicKeyPath, pubPEM, 0o644)
}

func (s *SigningService) loadKeys() error {
	privPEM, err := os.ReadFile(s.privateKeyPath)
	if err != nil {
		return err
	}
	block, _ := pem.Decode(privPEM)
	if block == nil {
		return fmt.Errorf("%s: not a PEM file", s.privateKeyPath)
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return err
	}
	priv, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return fmt.Errorf("%s: not an RSA key", s.privateKeyPath)
	}

	pubPEM, err := os.ReadFile(s.publicKeyPath)
	if err != nil {
		return err
	}
	block, _ = pem.Decode(pubPEM)
	if block == nil {
		return fmt.Errorf("%s: not a PEM file", s.publicKeyPath)
	}
	parsedPub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return err
	}
	pub, ok := parsedPub.(*rsa.PublicKey)
	if !ok {
		return fmt.Errorf("%s: not an RSA key", s.publicKeyPath)
	}

	s.privateKey = priv
	s.publicKey = pub
	return nil
}

func (s *SigningService) PrivateKey() *rsa.PrivateKey { return s.privateKey }
func (s *SigningService) PublicKey() *rsa.PublicKey   { return s.publicKey }

// PublicKeyPEM возвращает публичный ключ в PEM для раздачи устройствам
// посадки (офлайн-проверка подписи)
func (s *SigningService) PublicKeyPEM() ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(s.publicKey)
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}
