package test

import (
	"math/rand"
	"sync"
	"time"
)

const (
	idAlphabet   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	hexAlphabet  = "0123456789abcdef"
	gatewayIDLen = 14
)

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomGatewayID returns an identifier shaped like the gateway's, e.g. "pay_Abc123...".
func RandomGatewayID(prefix string) string {
	return prefix + "_" + randomString(idAlphabet, gatewayIDLen)
}

// RandomHex returns n lowercase hex characters, the shape of an encoded HMAC digest.
func RandomHex(n int) string {
	if n <= 0 {
		n = 1
	}
	return randomString(hexAlphabet, n)
}

func randomString(alphabet string, n int) string {
	rngMu.Lock()
	defer rngMu.Unlock()
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(buf)
}
