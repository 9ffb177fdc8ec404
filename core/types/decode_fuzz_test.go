package types

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	fuzz "github.com/google/gofuzz"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func requireKnownError(t *testing.T, err error, payload []byte) {
	t.Helper()
	if err == nil {
		return
	}
	require.True(t,
		errors.Is(err, ErrInvalidEnvelope) ||
			errors.Is(err, ErrInvalidSignature) ||
			errors.Is(err, ErrNumericOverflow) ||
			errors.Is(err, ErrInvalidChainId) ||
			errors.Is(err, ErrUnsupportedTxType),
		"unexpected error %v for %x", err, payload)
}

// Random bytes behind the native discriminant must never panic and must only
// fail with the codec's own errors.
func TestParseRandomNativePayload(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(0, 128)
	for i := 0; i < 2000; i++ {
		var body []byte
		f.Fuzz(&body)
		payload := append([]byte{NativeTxType}, body...)
		_, err := ParseTransaction(payload)
		requireKnownError(t, err, payload)
	}
}

// Well-formed lists of random fields exercise the field checks rather than
// the outer RLP framing.
func TestParseRandomNativeFields(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(0, 40)
	for i := 0; i < 2000; i++ {
		fields := make([][]byte, nativeUnsignedFields)
		if i%2 == 1 {
			fields = make([][]byte, nativeSignedFields)
		}
		for j := range fields {
			f.Fuzz(&fields[j])
		}
		body, err := rlp.EncodeToBytes(fields)
		require.NoError(t, err)
		payload := append([]byte{NativeTxType}, body...)
		_, err = ParseTransaction(payload)
		requireKnownError(t, err, payload)
	}
}
