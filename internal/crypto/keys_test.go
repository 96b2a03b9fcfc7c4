package crypto

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*SigningService, string, string) {
	t.Helper()
	dir := t.TempDir()
	priv := filepath.Join(dir, "qr_private.pem")
	pub := filepath.Join(dir, "qr_public.pem")
	svc, err := NewSigningService(priv, pub)
	require.NoError(t, err)
	return svc, priv, pub
}

func TestNewSigningService_GeneratesPair(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	require.NotNil(t, svc.PrivateKey())
	require.NotNil(t, svc.PublicKey())
	require.Equal(t, rsaKeyBits, svc.PrivateKey().N.BitLen())
}

func TestNewSigningService_ReloadsExistingPair(t *testing.T) {
	t.Parallel()

	first, priv, pub := newTestService(t)

	second, err := NewSigningService(priv, pub)
	require.NoError(t, err)
	require.Equal(t, 0, first.PrivateKey().D.Cmp(second.PrivateKey().D),
		"existing keys must be reloaded, not regenerated")
}

func TestNewSigningService_RegeneratesWhenFileMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	priv := filepath.Join(dir, "a", "qr_private.pem")
	pub := filepath.Join(dir, "b", "qr_public.pem")

	svc, err := NewSigningService(priv, pub)
	require.NoError(t, err)
	require.NotNil(t, svc.PublicKey())
}

func TestPublicKeyPEM(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	pemBytes, err := svc.PublicKeyPEM()
	require.NoError(t, err)
	require.Contains(t, string(pemBytes), "BEGIN PUBLIC KEY")
	require.NotContains(t, string(pemBytes), "PRIVATE")
}
