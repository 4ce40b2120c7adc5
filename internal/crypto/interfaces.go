// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/secret_hasher_mock.go -package=mock

// SecretHasher turns account secrets into salted one-way hashes and checks
// candidates against them.
//
// The encoded form is self-describing:
//
//	argon2id$v=19$m=65536,t=1,p=4$<salt b64>$<hash b64>
//
// so parameters can change without invalidating stored hashes.
type SecretHasher interface {
	// Hash returns the encoded hash of secret with a fresh random salt.
	Hash(secret string) (string, error)

	// Compare reports whether secret matches encoded. The derived keys are
	// compared in constant time. A malformed encoded value returns an error.
	Compare(secret, encoded string) (bool, error)
}
