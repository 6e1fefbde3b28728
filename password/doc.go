// Package password provides the one-way credential hashing collaborator:
// salted argon2id hashing with constant-time verification, encoded as PHC
// strings so stored hashes remain verifiable across parameter upgrades.
package password
