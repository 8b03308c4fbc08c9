package brief

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint derives a stable identity digest from an article's title and
// URL. Snippet, image and publish time are excluded on purpose so cosmetic
// feed differences do not defeat dedup. Equal inputs always produce equal
// output; there is no salt and no time component. Two articles with the same
// fingerprint are the same story.
//
// An article with neither title nor URL has no identity and gets an empty
// fingerprint, which the deduplicator drops.
func Fingerprint(title, url string) string {
	if title == "" && url == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(title + "|" + url))
	return hex.EncodeToString(sum[:])
}
