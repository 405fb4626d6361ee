package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainVerdict is the domain prefix for verdict digests. The version
// suffix enables future algorithm migration.
const DomainVerdict = "gavel/verdict/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte separator prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// VerdictDigest computes a content-addressed digest over a verdict's
// stable JSON form. Two runs over the same documents produce the same
// digest, so reports can be compared without diffing whole verdicts.
func VerdictDigest(v *Verdict) (string, error) {
	stable, err := v.StableJSON()
	if err != nil {
		return "", fmt.Errorf("verdict digest: %w", err)
	}
	return hashWithDomain(DomainVerdict, stable), nil
}
