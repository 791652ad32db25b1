package dice

import (
	"crypto/hmac"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Source yields uniformly distributed integers in [0, n).
type Source interface {
	Intn(n int) int
}

// NewSource returns a math/rand backed Source. A zero seed draws one from
// crypto/rand. The result is not safe for concurrent use.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = NewSeed()
	}
	return rand.New(rand.NewSource(seed))
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		// fallback to the clock if crypto fails
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// NewServerSeed returns a hex encoded 32 byte seed for a FairSource.
func NewServerSeed() string {
	var b [32]byte
	if _, err := crand.Read(b[:]); err != nil {
		binary.LittleEndian.PutUint64(b[:], uint64(time.Now().UnixNano()))
	}
	return hex.EncodeToString(b[:])
}

// FairSource derives every draw from HMAC-SHA256(serverSeed, "clientSeed:nonce:0"),
// so a sequence of rolls can be re-derived once the server seed is revealed.
type FairSource struct {
	serverSeed string
	clientSeed string
	nonce      uint64
}

// NewFairSource creates a FairSource starting at nonce 0
func NewFairSource(serverSeed, clientSeed string) *FairSource {
	return &FairSource{serverSeed: serverSeed, clientSeed: clientSeed}
}

// Intn returns floor(f*n) for the float at the current nonce and advances the nonce.
func (s *FairSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	f := Float(s.serverSeed, s.clientSeed, s.nonce)
	s.nonce++
	v := int(math.Floor(f * float64(n)))
	if v >= n {
		v = n - 1
	}
	return v
}

// Nonce reports how many draws have been taken.
func (s *FairSource) Nonce() uint64 {
	return s.nonce
}

// ClientSeed returns the public client seed.
func (s *FairSource) ClientSeed() string {
	return s.clientSeed
}

// ServerSeedHash returns the hex SHA-256 of the server seed, safe to publish before reveal.
func (s *FairSource) ServerSeedHash() string {
	return SeedHash(s.serverSeed)
}

// Reveal publishes the live server seed together with the draws taken under it.
// The source keeps using the seed; call Rotate to retire it.
func (s *FairSource) Reveal() Reveal {
	return Reveal{
		ServerSeed:     s.serverSeed,
		ServerSeedHash: s.ServerSeedHash(),
		ClientSeed:     s.clientSeed,
		Nonce:          s.nonce,
	}
}

// Rotate reveals the live server seed and switches to next, starting again at nonce 0.
func (s *FairSource) Rotate(next string) Reveal {
	r := s.Reveal()
	s.serverSeed = next
	s.nonce = 0
	return r
}

// SeedHash returns the hex SHA-256 of a server seed
func SeedHash(serverSeed string) string {
	sum := sha256.Sum256([]byte(serverSeed))
	return hex.EncodeToString(sum[:])
}

// Reveal is a retired server seed. Anyone holding it can re-derive every
// face rolled under it and check it against the hash published beforehand.
type Reveal struct {
	ServerSeed     string `json:"serverSeed"`
	ServerSeedHash string `json:"serverSeedHash"`
	ClientSeed     string `json:"clientSeed"`
	Nonce          uint64 `json:"nonce"` // draws taken under this seed
}

// Verify reports whether the seed matches its published hash
func (r Reveal) Verify() bool {
	return hmac.Equal([]byte(SeedHash(r.ServerSeed)), []byte(r.ServerSeedHash))
}

// Faces replays the faces rolled under the seed, in order. A Selector takes
// exactly one draw per roll, so nonce i is roll i.
func (r Reveal) Faces() []int {
	src := NewFairSource(r.ServerSeed, r.ClientSeed)
	faces := make([]int, r.Nonce)
	for i := range faces {
		faces[i] = src.Intn(Faces) + 1
	}
	return faces
}

// Float returns the float in [0, 1) for a seed pair and nonce, built from the
// first 4 bytes of the HMAC digest.
func Float(serverSeed, clientSeed string, nonce uint64) float64 {
	h := hmac.New(sha256.New, []byte(serverSeed))
	fmt.Fprintf(h, "%s:%d:%d", clientSeed, nonce, 0)
	sum := h.Sum(nil)

	result := 0.0
	for i, b := range sum[:4] {
		result += float64(b) / math.Pow(256, float64(i+1))
	}
	return result
}
