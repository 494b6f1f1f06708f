package wallet

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/sha3"

	"github.com/itani-network/kobswallet/internal/chain"
	walleterr "github.com/itani-network/kobswallet/pkg/errors"
)

// itaniAddressPrefix marks native chain addresses.
const itaniAddressPrefix = "iTa"

// Generated is freshly created key material. The mnemonic is shown to the
// user exactly once and never stored.
type Generated struct {
	Address    string
	PrivateKey string
	Mnemonic   string
}

// GenerateKey creates a new key for the given chain from a fresh BIP-39
// mnemonic, deriving m/44'/60'/0'/0/0.
func GenerateKey(chainID chain.ID) (*Generated, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return nil, walleterr.Wrap(err, "failed to generate entropy")
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, walleterr.Wrap(err, "failed to generate mnemonic")
	}

	privHex, err := deriveKey(mnemonic)
	if err != nil {
		return nil, err
	}

	address, err := DeriveAddress(chainID, privHex)
	if err != nil {
		return nil, err
	}

	return &Generated{
		Address:    address,
		PrivateKey: privHex,
		Mnemonic:   mnemonic,
	}, nil
}

// RecoverKey re-derives the key for a chain from an existing mnemonic.
func RecoverKey(chainID chain.ID, mnemonic string) (*Generated, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, walleterr.WithDetails(walleterr.ErrInvalidInput, map[string]string{
			"field": "mnemonic",
		})
	}

	privHex, err := deriveKey(mnemonic)
	if err != nil {
		return nil, err
	}

	address, err := DeriveAddress(chainID, privHex)
	if err != nil {
		return nil, err
	}

	return &Generated{
		Address:    address,
		PrivateKey: privHex,
		Mnemonic:   mnemonic,
	}, nil
}

// deriveKey walks m/44'/60'/0'/0/0 and returns the leaf private key as hex.
func deriveKey(mnemonic string) (string, error) {
	seed := bip39.NewSeed(mnemonic, "")

	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return "", walleterr.Wrap(err, "failed to derive master key")
	}

	path := []uint32{
		bip32.FirstHardenedChild + 44,
		bip32.FirstHardenedChild + 60,
		bip32.FirstHardenedChild,
		0,
		0,
	}
	for _, index := range path {
		key, err = key.NewChildKey(index)
		if err != nil {
			return "", walleterr.Wrap(err, "failed to derive child key")
		}
	}

	return hex.EncodeToString(key.Key), nil
}

// DeriveAddress computes the chain-specific address for a hex private key.
// Only chains whose address scheme the wallet can derive locally are
// supported; importing into other chains requires an explicit address.
func DeriveAddress(chainID chain.ID, privHex string) (string, error) {
	switch chainID {
	case chain.Itani:
		return itaniAddress(privHex)
	case chain.Ethereum, chain.Avalanche:
		return evmAddress(privHex)
	default:
		return "", walleterr.WithDetails(walleterr.ErrUnsupportedOperation, map[string]string{
			"chain":     chainID.String(),
			"operation": "derive_address",
		})
	}
}

func evmAddress(privHex string) (string, error) {
	priv, err := crypto.HexToECDSA(strings.TrimPrefix(privHex, "0x"))
	if err != nil {
		return "", walleterr.Wrap(err, "invalid private key")
	}
	return crypto.PubkeyToAddress(priv.PublicKey).Hex(), nil
}

// itaniAddress derives the iTa-prefixed native address: the prefix plus the
// uppercase hex of the last 16 bytes of keccak256(uncompressed pubkey).
func itaniAddress(privHex string) (string, error) {
	priv, err := crypto.HexToECDSA(strings.TrimPrefix(privHex, "0x"))
	if err != nil {
		return "", walleterr.Wrap(err, "invalid private key")
	}

	pub := crypto.FromECDSAPub(&priv.PublicKey)[1:]

	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(pub)
	sum := hasher.Sum(nil)

	return itaniAddressPrefix + strings.ToUpper(hex.EncodeToString(sum[len(sum)-16:])), nil
}
