package chain

import (
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/config/netmode"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
)

// LocalSigner implements Signer using a single private key held in process
// memory, the single-key case of a TEE/HSM-backed signer trimmed down since
// the demo pipeline has no TEE/HSM backend to call out to.
type LocalSigner struct {
	account *wallet.Account
}

// NewLocalSignerFromWIF constructs a LocalSigner from a WIF-encoded private
// key.
func NewLocalSignerFromWIF(wif string) (*LocalSigner, error) {
	account, err := wallet.NewAccountFromWIF(wif)
	if err != nil {
		return nil, fmt.Errorf("chain: account from WIF: %w", err)
	}
	return &LocalSigner{account: account}, nil
}

// NewLocalSignerFromPrivateKeyHex constructs a LocalSigner from a
// hex-encoded secp256r1 private key.
func NewLocalSignerFromPrivateKeyHex(privateKeyHex string) (*LocalSigner, error) {
	priv, err := keys.NewPrivateKeyFromHex(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("chain: private key from hex: %w", err)
	}
	return &LocalSigner{account: wallet.NewAccountFromPrivateKey(priv)}, nil
}

// ScriptHash returns the signer's verification script hash.
func (s *LocalSigner) ScriptHash() util.Uint160 {
	if s == nil || s.account == nil {
		return util.Uint160{}
	}
	return s.account.ScriptHash()
}

// SignTx signs tx in place for the given network magic.
func (s *LocalSigner) SignTx(net netmode.Magic, tx *transaction.Transaction) error {
	if s == nil || s.account == nil {
		return fmt.Errorf("chain: local signer not configured")
	}
	return s.account.SignTx(net, tx)
}
