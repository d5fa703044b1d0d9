package hdwallet

import (
	"encoding/hex"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Vectors 1, 2 and 3 from the published BIP-32 test vectors. Vector 3
// exercises leading-zero retention in the private scalar.
var bip32Vectors = []struct {
	name    string
	seed    string
	path    string
	privKey string
	pubKey  string
}{
	{
		name:    "vector 1 chain m",
		seed:    "000102030405060708090a0b0c0d0e0f",
		path:    "m",
		privKey: "xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi",
		pubKey:  "xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8",
	},
	{
		name:    "vector 1 chain m/0'",
		seed:    "000102030405060708090a0b0c0d0e0f",
		path:    "m/0'",
		privKey: "xprv9uHRZZhk6KAJC1avXpDAp4MDc3sQKNxDiPvvkX8Br5ngLNv1TxvUxt4cV1rGL5hj6KCesnDYUhd7oWgT11eZG7XnxHrnYeSvkzY7d2bhkJ7",
		pubKey:  "xpub68Gmy5EdvgibQVfPdqkBBCHxA5htiqg55crXYuXoQRKfDBFA1WEjWgP6LHhwBZeNK1VTsfTFUHCdrfp1bgwQ9xv5ski8PX9rL2dZXvgGDnw",
	},
	{
		name:    "vector 1 chain m/0'/1",
		seed:    "000102030405060708090a0b0c0d0e0f",
		path:    "m/0'/1",
		privKey: "xprv9wTYmMFdV23N2TdNG573QoEsfRrWKQgWeibmLntzniatZvR9BmLnvSxqu53Kw1UmYPxLgboyZQaXwTCg8MSY3H2EU4pWcQDnRnrVA1xe8fs",
		pubKey:  "xpub6ASuArnXKPbfEwhqN6e3mwBcDTgzisQN1wXN9BJcM47sSikHjJf3UFHKkNAWbWMiGj7Wf5uMash7SyYq527Hqck2AxYysAA7xmALppuCkwQ",
	},
	{
		name:    "vector 1 chain m/0'/1/2'",
		seed:    "000102030405060708090a0b0c0d0e0f",
		path:    "m/0'/1/2'",
		privKey: "xprv9z4pot5VBttmtdRTWfWQmoH1taj2axGVzFqSb8C9xaxKymcFzXBDptWmT7FwuEzG3ryjH4ktypQSAewRiNMjANTtpgP4mLTj34bhnZX7UiM",
		pubKey:  "xpub6D4BDPcP2GT577Vvch3R8wDkScZWzQzMMUm3PWbmWvVJrZwQY4VUNgqFJPMM3No2dFDFGTsxxpG5uJh7n7epu4trkrX7x7DogT5Uv6fcLW5",
	},
	{
		name:    "vector 1 chain m/0'/1/2'/2",
		seed:    "000102030405060708090a0b0c0d0e0f",
		path:    "m/0'/1/2'/2",
		privKey: "xprvA2JDeKCSNNZky6uBCviVfJSKyQ1mDYahRjijr5idH2WwLsEd4Hsb2Tyh8RfQMuPh7f7RtyzTtdrbdqqsunu5Mm3wDvUAKRHSC34sJ7in334",
		pubKey:  "xpub6FHa3pjLCk84BayeJxFW2SP4XRrFd1JYnxeLeU8EqN3vDfZmbqBqaGJAyiLjTAwm6ZLRQUMv1ZACTj37sR62cfN7fe5JnJ7dh8zL4fiyLHV",
	},
	{
		name:    "vector 1 chain m/0'/1/2'/2/1000000000",
		seed:    "000102030405060708090a0b0c0d0e0f",
		path:    "m/0'/1/2'/2/1000000000",
		privKey: "xprvA41z7zogVVwxVSgdKUHDy1SKmdb533PjDz7J6N6mV6uS3ze1ai8FHa8kmHScGpWmj4WggLyQjgPie1rFSruoUihUZREPSL39UNdE3BBDu76",
		pubKey:  "xpub6H1LXWLaKsWFhvm6RVpEL9P4KfRZSW7abD2ttkWP3SSQvnyA8FSVqNTEcYFgJS2UaFcxupHiYkro49S8yGasTvXEYBVPamhGW6cFJodrTHy",
	},
	{
		name:    "vector 2 chain m",
		seed:    "fffcf9f6f3f0edeae7e4e1dedbd8d5d2cfccc9c6c3c0bdbab7b4b1aeaba8a5a29f9c999693908d8a8784817e7b7875726f6c696663605d5a5754514e4b484542",
		path:    "m",
		privKey: "xprv9s21ZrQH143K31xYSDQpPDxsXRTUcvj2iNHm5NUtrGiGG5e2DtALGdso3pGz6ssrdK4PFmM8NSpSBHNqPqm55Qn3LqFtT2emdEXVYsCzC2U",
		pubKey:  "xpub661MyMwAqRbcFW31YEwpkMuc5THy2PSt5bDMsktWQcFF8syAmRUapSCGu8ED9W6oDMSgv6Zz8idoc4a6mr8BDzTJY47LJhkJ8UB7WEGuduB",
	},
	{
		name:    "vector 2 chain m/0",
		seed:    "fffcf9f6f3f0edeae7e4e1dedbd8d5d2cfccc9c6c3c0bdbab7b4b1aeaba8a5a29f9c999693908d8a8784817e7b7875726f6c696663605d5a5754514e4b484542",
		path:    "m/0",
		privKey: "xprv9vHkqa6EV4sPZHYqZznhT2NPtPCjKuDKGY38FBWLvgaDx45zo9WQRUT3dKYnjwih2yJD9mkrocEZXo1ex8G81dwSM1fwqWpWkeS3v86pgKt",
		pubKey:  "xpub69H7F5d8KSRgmmdJg2KhpAK8SR3DjMwAdkxj3ZuxV27CprR9LgpeyGmXUbC6wb7ERfvrnKZjXoUmmDznezpbZb7ap6r1D3tgFxHmwMkQTPH",
	},
	{
		name:    "vector 2 chain m/0/2147483647'",
		seed:    "fffcf9f6f3f0edeae7e4e1dedbd8d5d2cfccc9c6c3c0bdbab7b4b1aeaba8a5a29f9c999693908d8a8784817e7b7875726f6c696663605d5a5754514e4b484542",
		path:    "m/0/2147483647'",
		privKey: "xprv9wSp6B7kry3Vj9m1zSnLvN3xH8RdsPP1Mh7fAaR7aRLcQMKTR2vidYEeEg2mUCTAwCd6vnxVrcjfy2kRgVsFawNzmjuHc2YmYRmagcEPdU9",
		pubKey:  "xpub6ASAVgeehLbnwdqV6UKMHVzgqAG8Gr6riv3Fxxpj8ksbH9ebxaEyBLZ85ySDhKiLDBrQSARLq1uNRts8RuJiHjaDMBU4Zn9h8LZNnBC5y4a",
	},
	{
		name:    "vector 2 chain m/0/2147483647'/1",
		seed:    "fffcf9f6f3f0edeae7e4e1dedbd8d5d2cfccc9c6c3c0bdbab7b4b1aeaba8a5a29f9c999693908d8a8784817e7b7875726f6c696663605d5a5754514e4b484542",
		path:    "m/0/2147483647'/1",
		privKey: "xprv9zFnWC6h2cLgpmSA46vutJzBcfJ8yaJGg8cX1e5StJh45BBciYTRXSd25UEPVuesF9yog62tGAQtHjXajPPdbRCHuWS6T8XA2ECKADdw4Ef",
		pubKey:  "xpub6DF8uhdarytz3FWdA8TvFSvvAh8dP3283MY7p2V4SeE2wyWmG5mg5EwVvmdMVCQcoNJxGoWaU9DCWh89LojfZ537wTfunKau47EL2dhHKon",
	},
	{
		name:    "vector 2 chain m/0/2147483647'/1/2147483646'",
		seed:    "fffcf9f6f3f0edeae7e4e1dedbd8d5d2cfccc9c6c3c0bdbab7b4b1aeaba8a5a29f9c999693908d8a8784817e7b7875726f6c696663605d5a5754514e4b484542",
		path:    "m/0/2147483647'/1/2147483646'",
		privKey: "xprvA1RpRA33e1JQ7ifknakTFpgNXPmW2YvmhqLQYMmrj4xJXXWYpDPS3xz7iAxn8L39njGVyuoseXzU6rcxFLJ8HFsTjSyQbLYnMpCqE2VbFWc",
		pubKey:  "xpub6ERApfZwUNrhLCkDtcHTcxd75RbzS1ed54G1LkBUHQVHQKqhMkhgbmJbZRkrgZw4koxb5JaHWkY4ALHY2grBGRjaDMzQLcgJvLJuZZvRcEL",
	},
	{
		name:    "vector 2 chain m/0/2147483647'/1/2147483646'/2",
		seed:    "fffcf9f6f3f0edeae7e4e1dedbd8d5d2cfccc9c6c3c0bdbab7b4b1aeaba8a5a29f9c999693908d8a8784817e7b7875726f6c696663605d5a5754514e4b484542",
		path:    "m/0/2147483647'/1/2147483646'/2",
		privKey: "xprvA2nrNbFZABcdryreWet9Ea4LvTJcGsqrMzxHx98MMrotbir7yrKCEXw7nadnHM8Dq38EGfSh6dqA9QWTyefMLEcBYJUuekgW4BYPJcr9E7j",
		pubKey:  "xpub6FnCn6nSzZAw5Tw7cgR9bi15UV96gLZhjDstkXXxvCLsUXBGXPdSnLFbdpq8p9HmGsApME5hQTZ3emM2rnY5agb9rXpVGyy3bdW6EEgAtqt",
	},
	{
		name:    "vector 3 chain m",
		seed:    "4b381541583be4423346c643850da4b320e46a87ae3d2a4e6da11eba819cd4acba45d239319ac14f863b8d5ab5a0d0c64d2e8a1e7d1457df2e5a3c51c73235be",
		path:    "m",
		privKey: "xprv9s21ZrQH143K25QhxbucbDDuQ4naNntJRi4KUfWT7xo4EKsHt2QJDu7KXp1A3u7Bi1j8ph3EGsZ9Xvz9dGuVrtHHs7pXeTzjuxBrCmmhgC6",
		pubKey:  "xpub661MyMwAqRbcEZVB4dScxMAdx6d4nFc9nvyvH3v4gJL378CSRZiYmhRoP7mBy6gSPSCYk6SzXPTf3ND1cZAceL7SfJ1Z3GC8vBgp2epUt13",
	},
	{
		name:    "vector 3 chain m/0'",
		seed:    "4b381541583be4423346c643850da4b320e46a87ae3d2a4e6da11eba819cd4acba45d239319ac14f863b8d5ab5a0d0c64d2e8a1e7d1457df2e5a3c51c73235be",
		path:    "m/0'",
		privKey: "xprv9uPDJpEQgRQfDcW7BkF7eTya6RPxXeJCqCJGHuCJ4GiRVLzkTXBAJMu2qaMWPrS7AANYqdq6vcBcBUdJCVVFceUvJFjaPdGZ2y9WACViL4L",
		pubKey:  "xpub68NZiKmJWnxxS6aaHmn81bvJeTESw724CRDs6HbuccFQN9Ku14VQrADWgqbhhTHBaohPX4CjNLf9fq9MYo6oDaPPLPxSb7gwQN3ih19Zm4Y",
	},
}

func TestBIP32Vectors(t *testing.T) {
	backend := NewSecp256k1Backend()

	for _, test := range bip32Vectors {
		t.Run(test.name, func(t *testing.T) {
			seed, err := hex.DecodeString(test.seed)
			require.NoError(t, err)

			path, err := ParseDerivationPath(test.path)
			require.NoError(t, err)

			key, err := DeriveFromPath(seed, path, backend)
			require.NoError(t, err)
			defer key.Zero()

			privStr, err := key.Encode(MainnetPrivate)
			require.NoError(t, err)
			assert.Equal(t, test.privKey, privStr)

			pub, err := key.Neuter()
			require.NoError(t, err)
			pubStr, err := pub.Encode(MainnetPublic)
			require.NoError(t, err)
			assert.Equal(t, test.pubKey, pubStr)
		})
	}
}

func TestPathEquivalence(t *testing.T) {
	backend := NewSecp256k1Backend()
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)

	path, err := ParseDerivationPath("m/0'/1/2'/2/1000000000")
	require.NoError(t, err)

	folded, err := DeriveFromPath(seed, path, backend)
	require.NoError(t, err)
	defer folded.Zero()

	stepped, err := NewMaster(seed, backend)
	require.NoError(t, err)
	for _, index := range path {
		next, err := stepped.Child(index)
		require.NoError(t, err)
		stepped.Zero()
		stepped = next
	}
	defer stepped.Zero()

	assert.True(t, SecureEquals(folded, stepped))
}

func TestDepthMonotonicity(t *testing.T) {
	backend := NewSecp256k1Backend()
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)

	parent, err := NewMaster(seed, backend)
	require.NoError(t, err)
	defer parent.Zero()
	assert.Equal(t, uint8(0), parent.Depth())

	index, err := NewChildIndex(0, false)
	require.NoError(t, err)
	child, err := parent.Child(index)
	require.NoError(t, err)
	defer child.Zero()

	assert.Equal(t, parent.Depth()+1, child.Depth())
	assert.Equal(t, index, child.Attributes().ChildIndex)

	parentFP, err := parent.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, parentFP, child.Attributes().ParentFingerprint)
}

func TestDeriveBeyondMaxDepth(t *testing.T) {
	backend := NewSecp256k1Backend()
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)

	key, err := NewMaster(seed, backend)
	require.NoError(t, err)
	defer key.Zero()

	// Force the key to the deepest representable level; the 256th
	// derivation must fail instead of wrapping the depth byte.
	key.attrs.Depth = maxDepth

	index, err := NewChildIndex(0, false)
	require.NoError(t, err)
	_, err = key.Child(index)
	assert.ErrorIs(t, err, ErrDeriveBeyondMaxDepth)
}

func TestNewMasterSeedLength(t *testing.T) {
	backend := NewSecp256k1Backend()

	tests := []struct {
		length int
		ok     bool
	}{
		{15, false},
		{16, true},
		{17, false},
		{32, true},
		{63, false},
		{64, true},
		{65, false},
		{0, false},
	}

	for _, test := range tests {
		seed := make([]byte, test.length)
		if test.length > 0 {
			seed[0] = 0x01
		}

		key, err := NewMaster(seed, backend)
		if test.ok {
			require.NoError(t, err, "length %d", test.length)
			key.Zero()
		} else {
			assert.ErrorIs(t, err, ErrInvalidSeedLength, "length %d", test.length)
		}
	}
}

func TestFingerprintDeterminism(t *testing.T) {
	backend := NewSecp256k1Backend()
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)

	key, err := NewMaster(seed, backend)
	require.NoError(t, err)
	defer key.Zero()

	first, err := key.Fingerprint()
	require.NoError(t, err)
	second, err := key.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Vector 1: the fingerprint of the master key is the parent
	// fingerprint recorded in its m/0' child.
	index, err := NewChildIndex(0, true)
	require.NoError(t, err)
	child, err := key.Child(index)
	require.NoError(t, err)
	defer child.Zero()
	assert.Equal(t, first, child.Attributes().ParentFingerprint)

	childFP, err := child.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, first, childFP)
}

func TestZeroedKeyRefusesUse(t *testing.T) {
	backend := NewSecp256k1Backend()
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)

	key, err := NewMaster(seed, backend)
	require.NoError(t, err)

	key.Zero()
	assert.True(t, key.IsZeroed())

	index, err := NewChildIndex(0, false)
	require.NoError(t, err)

	_, err = key.Child(index)
	assert.ErrorIs(t, err, ErrZeroedKey)
	_, err = key.Neuter()
	assert.ErrorIs(t, err, ErrZeroedKey)
	_, err = key.Encode(MainnetPrivate)
	assert.ErrorIs(t, err, ErrZeroedKey)

	// Zeroing twice is fine.
	key.Zero()
}

func TestSecureEquals(t *testing.T) {
	backend := NewSecp256k1Backend()
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)
	otherSeed, err := hex.DecodeString("fffcf9f6f3f0edeae7e4e1dedbd8d5d2cfccc9c6c3c0bdbab7b4b1aeaba8a5a2")
	require.NoError(t, err)

	a, err := NewMaster(seed, backend)
	require.NoError(t, err)
	defer a.Zero()
	b, err := NewMaster(seed, backend)
	require.NoError(t, err)
	defer b.Zero()
	c, err := NewMaster(otherSeed, backend)
	require.NoError(t, err)
	defer c.Zero()

	assert.True(t, SecureEquals(a, b))
	assert.False(t, SecureEquals(a, c))
	assert.False(t, SecureEquals(a, nil))
	assert.True(t, SecureEquals(nil, nil))

	zeroed, err := NewMaster(seed, backend)
	require.NoError(t, err)
	zeroed.Zero()
	assert.False(t, SecureEquals(a, zeroed))
}

// stubBackend lets the derivation engine be exercised without any curve
// arithmetic, and simulates the zero child scalar case.
type stubBackend struct {
	failDerive bool
}

type stubScalar struct {
	b [32]byte
}

func (s *stubScalar) Bytes() [32]byte { return s.b }
func (s *stubScalar) Zero()           { s.b = [32]byte{} }

type stubPublicKey struct {
	b [33]byte
}

func (p *stubPublicKey) SerializeCompressed() []byte { return p.b[:] }

func (sb *stubBackend) ScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) != 32 {
		return nil, ErrInvalidKeyMaterial
	}
	s := &stubScalar{}
	copy(s.b[:], b)
	return s, nil
}

func (sb *stubBackend) DeriveChildScalar(parent Scalar, tweak [32]byte) (Scalar, error) {
	if sb.failDerive {
		return nil, ErrUnusableChildKey
	}
	s := &stubScalar{}
	parentBytes := parent.Bytes()
	for i := range s.b {
		s.b[i] = parentBytes[i] ^ tweak[i]
	}
	return s, nil
}

func (sb *stubBackend) PublicKeyOf(s Scalar) (PublicKey, error) {
	p := &stubPublicKey{}
	p.b[0] = 0x02
	scalarBytes := s.Bytes()
	copy(p.b[1:], scalarBytes[:])
	return p, nil
}

func (sb *stubBackend) PublicKeyFromBytes(b []byte) (PublicKey, error) {
	if len(b) != 33 {
		return nil, ErrInvalidKeyMaterial
	}
	p := &stubPublicKey{}
	copy(p.b[:], b)
	return p, nil
}

func (sb *stubBackend) Fingerprint(pub PublicKey) [4]byte {
	return fingerprint(pub.SerializeCompressed())
}

func TestChildSurfacesUnusableScalar(t *testing.T) {
	backend := &stubBackend{failDerive: true}
	seed := make([]byte, 32)
	seed[0] = 0x01

	key, err := NewMaster(seed, backend)
	require.NoError(t, err)
	defer key.Zero()

	index, err := NewChildIndex(0, false)
	require.NoError(t, err)

	// The engine must surface the failure rather than retry with the
	// next index.
	_, err = key.Child(index)
	assert.ErrorIs(t, errors.Cause(err), ErrUnusableChildKey)
}

func TestEngineAgainstStubBackend(t *testing.T) {
	backend := &stubBackend{}
	seed := make([]byte, 64)
	for i := range seed {
		seed[i] = byte(i)
	}

	path, err := ParseDerivationPath("m/1'/2/3")
	require.NoError(t, err)

	key, err := DeriveFromPath(seed, path, backend)
	require.NoError(t, err)
	defer key.Zero()

	assert.Equal(t, uint8(3), key.Depth())

	again, err := DeriveFromPath(seed, path, backend)
	require.NoError(t, err)
	defer again.Zero()
	assert.True(t, SecureEquals(key, again))
}
