// Package fingerprint computes a stable content hash of a token stream,
// stored per script by the watch-mode cache (pkgs/cache) and printed to
// give a script a short, shareable identity (`lox --fingerprint`).
package fingerprint

import (
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/sha3"

	"github.com/aledsdavies/lox/pkgs/token"
)

// tokensAlias is the named slice type handed to the CBOR encoder. It has
// no methods of its own; each element is encoded as a token.Token.
type tokensAlias []token.Token

// Of returns the hex-encoded SHA3-256 digest of tokens' canonical CBOR
// encoding. The same token slice always produces the same fingerprint
// regardless of map iteration order elsewhere in the program — canonical
// CBOR fixes map key ordering and integer encoding.
func Of(tokens []token.Token) (string, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return "", fmt.Errorf("fingerprint: build CBOR encoder: %w", err)
	}

	data, err := encMode.Marshal(tokensAlias(tokens))
	if err != nil {
		return "", fmt.Errorf("fingerprint: encode tokens: %w", err)
	}

	digest := sha3.Sum256(data)
	return hex.EncodeToString(digest[:]), nil
}
