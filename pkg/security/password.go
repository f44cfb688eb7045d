package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/marcheplus/marcheplus-backend/pkg/config"
)

// MinPasswordLength is enforced at registration.
const MinPasswordLength = 6

// ErrInvalidHash signals a stored hash that is not a well-formed argon2id string.
var ErrInvalidHash = errors.New("invalid argon2id hash")

var b64 = base64.RawStdEncoding

// Hashes are stored in PHC form: $argon2id$v=19$m=<KiB>,t=<passes>,p=<lanes>$<salt>$<key>
type argonParams struct {
	memory  uint32
	passes  uint32
	lanes   uint8
	saltLen uint32
	keyLen  uint32
}

type storedHash struct {
	params argonParams
	salt   []byte
	key    []byte
}

func HashPassword(password string, cfg config.PasswordConfig) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	p := paramsFor(cfg)
	salt := make([]byte, p.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, p.passes, p.memory, p.lanes, p.keyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.memory, p.passes, p.lanes, b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

// VerifyPassword reports whether password matches encoded. A malformed hash is
// an error, a mismatch is not.
func VerifyPassword(password, encoded string) (bool, error) {
	h, err := parseHash(encoded)
	if err != nil {
		return false, err
	}
	key := argon2.IDKey([]byte(password), h.salt, h.params.passes, h.params.memory, h.params.lanes, h.params.keyLen)
	return subtle.ConstantTimeCompare(h.key, key) == 1, nil
}

// NeedsRehash reports whether encoded was produced with different cost
// parameters than cfg currently asks for.
func NeedsRehash(encoded string, cfg config.PasswordConfig) bool {
	h, err := parseHash(encoded)
	if err != nil {
		return true
	}
	return h.params != paramsFor(cfg)
}

func paramsFor(cfg config.PasswordConfig) argonParams {
	return argonParams{
		memory:  uint32(clamp(cfg.ArgonMemoryKB, 8, 512*1024)),
		passes:  uint32(clamp(cfg.ArgonTime, 1, 10)),
		lanes:   uint8(clamp(cfg.ArgonParallelism, 1, 255)),
		saltLen: uint32(clamp(cfg.ArgonSaltLen, 8, 64)),
		keyLen:  uint32(clamp(cfg.ArgonKeyLen, 16, 64)),
	}
}

func parseHash(encoded string) (storedHash, error) {
	fields := strings.Split(encoded, "$")
	if len(fields) != 6 || fields[0] != "" || fields[1] != "argon2id" {
		return storedHash{}, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(fields[2], "v=%d", &version); err != nil || version != argon2.Version {
		return storedHash{}, ErrInvalidHash
	}

	var h storedHash
	if _, err := fmt.Sscanf(fields[3], "m=%d,t=%d,p=%d", &h.params.memory, &h.params.passes, &h.params.lanes); err != nil {
		return storedHash{}, ErrInvalidHash
	}
	if h.params.memory == 0 || h.params.passes == 0 || h.params.lanes == 0 {
		return storedHash{}, ErrInvalidHash
	}

	var err error
	if h.salt, err = b64.DecodeString(fields[4]); err != nil || len(h.salt) == 0 {
		return storedHash{}, ErrInvalidHash
	}
	if h.key, err = b64.DecodeString(fields[5]); err != nil || len(h.key) == 0 {
		return storedHash{}, ErrInvalidHash
	}
	h.params.saltLen = uint32(len(h.salt))
	h.params.keyLen = uint32(len(h.key))
	return h, nil
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
