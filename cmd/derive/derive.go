// Package derive implements offline key derivation without touching
// any server-side state. Useful for air-gapped verification.
package derive

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/iqlusioninc/crates-sub000/internal/chain"
	"github.com/iqlusioninc/crates-sub000/internal/hdwallet"
	"github.com/iqlusioninc/crates-sub000/internal/seed"
)

const (
	mnemonicFlag   = "mnemonic"
	passphraseFlag = "passphrase"
	pathFlag       = "path"
	networkFlag    = "network"
	chainFlag      = "chain"
	showPrivate    = "show-private"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derives a key offline from a mnemonic",
		Long: `Derives an extended key from a BIP-39 mnemonic and a
derivation path, printing the public half and optionally the private
serialization. Nothing is persisted.`,
		Run: run,
	}

	cmd.Flags().String(mnemonicFlag, "", "BIP-39 mnemonic (read from stdin when omitted)")
	cmd.Flags().String(passphraseFlag, "", "Optional BIP-39 passphrase")
	cmd.Flags().String(pathFlag, "m", "Derivation path, e.g. m/44'/0'/0'/0/0")
	cmd.Flags().String(networkFlag, "mainnet", "Serialization network (mainnet or testnet)")
	cmd.Flags().String(chainFlag, "", "Optionally encode an address (BTC or ETH)")
	cmd.Flags().Bool(showPrivate, false, "Also print the extended private key")

	return cmd
}

func run(cmd *cobra.Command, _ []string) {
	mnemonic, _ := cmd.Flags().GetString(mnemonicFlag)
	passphrase, _ := cmd.Flags().GetString(passphraseFlag)
	pathStr, _ := cmd.Flags().GetString(pathFlag)
	network, _ := cmd.Flags().GetString(networkFlag)
	chainType, _ := cmd.Flags().GetString(chainFlag)
	withPrivate, _ := cmd.Flags().GetBool(showPrivate)

	if mnemonic == "" {
		fmt.Fprintln(os.Stderr, "Enter mnemonic:")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read mnemonic from stdin")
		}
		mnemonic = strings.TrimSpace(line)
	}
	if !seed.Validate(mnemonic) {
		log.Fatal().Msg("Mnemonic failed checksum validation")
	}

	var privVersion, pubVersion hdwallet.KeyVersion
	params := &chaincfg.MainNetParams
	switch network {
	case "mainnet":
		privVersion, pubVersion = hdwallet.MainnetPrivate, hdwallet.MainnetPublic
	case "testnet":
		privVersion, pubVersion = hdwallet.TestnetPrivate, hdwallet.TestnetPublic
		params = &chaincfg.TestNet3Params
	default:
		log.Fatal().Str("network", network).Msg("Unsupported network")
	}

	path, err := hdwallet.ParseDerivationPath(pathStr)
	if err != nil {
		log.Fatal().Err(err).Str("path", pathStr).Msg("Invalid derivation path")
	}

	rootSeed, err := seed.FromMnemonic(mnemonic, passphrase)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to derive seed")
	}
	defer seed.Wipe(rootSeed)

	derived, err := hdwallet.DeriveFromPath(rootSeed, path, hdwallet.NewSecp256k1Backend())
	if err != nil {
		log.Fatal().Err(err).Msg("Derivation failed")
	}
	defer derived.Zero()

	neutered, err := derived.Neuter()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to neuter derived key")
	}

	xpub, err := neutered.Encode(pubVersion)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode extended public key")
	}

	fp := neutered.Fingerprint()

	fmt.Printf("path:        %s\n", path.String())
	fmt.Printf("fingerprint: %s\n", hex.EncodeToString(fp[:]))
	fmt.Printf("public key:  %s\n", hex.EncodeToString(neutered.PublicKey().SerializeCompressed()))
	fmt.Printf("xpub:        %s\n", xpub)

	if chainType != "" {
		registry, err := chain.NewRegistry(chain.NewBitcoinEncoder(params), chain.NewEthereumEncoder())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to build chain registry")
		}
		enc, err := registry.Encoder(chain.Symbol(chainType))
		if err != nil {
			log.Fatal().Err(err).Str("chain", chainType).Msg("Unsupported chain")
		}
		address, err := enc.EncodeAddress(neutered.PublicKey().SerializeCompressed())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to encode address")
		}
		fmt.Printf("address:     %s\n", address)
	}

	if withPrivate {
		xprv, err := derived.Encode(privVersion)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to encode extended private key")
		}
		fmt.Printf("xprv:        %s\n", xprv)
	}
}
