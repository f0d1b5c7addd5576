// Package randpool provides a pooled userspace CSPRNG for generating
// scratch-file name tokens without hitting the system entropy source on
// every request.
package randpool

import (
	"bufio"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"io"
	"log"
	"runtime"
	"sync"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/sys/cpu"
)

var sysrandPool sync.Pool = sync.Pool{
	New: func() interface{} {
		return bufio.NewReader(rand.Reader)
	},
}

func sysrand(b []byte) error {
	r := sysrandPool.Get().(*bufio.Reader)
	_, err := io.ReadFull(r, b)
	sysrandPool.Put(r)
	return err
}

// fallback keystream for the rare case the system source fails at pool init.
var fallback = func() *chacha20.Cipher {
	var initdata [12 + 32]byte // 12 byte nonce, 32 byte key
	_, err := io.ReadFull(rand.Reader, initdata[:])
	if err != nil {
		panic(err)
	}
	c, err := chacha20.NewUnauthenticatedCipher(initdata[12:], initdata[:12])
	if err != nil {
		panic(err)
	}
	return c
}()

type prng struct {
	stream cipher.Stream
	used   uint64
}

// Rekey after 50GiB of output per stream.
const rekeyLimit = 50 * 1 << 30

var useAES bool = (runtime.GOARCH == "arm64" && cpu.ARM64.HasAES) ||
	(runtime.GOARCH == "amd64" && cpu.X86.HasAES) ||
	(runtime.GOOS == "darwin" && (runtime.GOARCH == "arm64" || runtime.GOARCH == "amd64"))

var prngPool sync.Pool = sync.Pool{
	New: func() interface{} {
		if useAES {
			var initdata [16 + 32]byte // 16 byte nonce, 32 byte key
			seed(initdata[:])
			block, err := aes.NewCipher(initdata[16:])
			if err != nil {
				panic(err) // should never happen
			}
			return &prng{stream: cipher.NewCTR(block, initdata[:16])}
		}

		var initdata [12 + 32]byte // 12 byte nonce, 32 byte key
		seed(initdata[:])
		c, err := chacha20.NewUnauthenticatedCipher(initdata[12:], initdata[:12])
		if err != nil {
			panic(err) // should never happen
		}
		return &prng{stream: c}
	},
}

func seed(initdata []byte) {
	if err := sysrand(initdata); err != nil {
		log.Println("randpool: failed to read from system rand, using fallback")
		fallback.XORKeyStream(initdata, initdata)
	}
}

// Read fills dst with random bytes.
func Read(dst []byte) {
	p := prngPool.Get().(*prng)
	p.used += uint64(len(dst))
	p.stream.XORKeyStream(dst, dst)
	if p.used < rekeyLimit {
		prngPool.Put(p)
	}
}
