package crypto

import (
	"bytes"
	"fmt"

	"golang.org/x/crypto/ssh"

	"rad/internal/domain"
)

// SSHPublicKey converts pub to its ssh wire form.
func SSHPublicKey(pub domain.Ed25519Public) (ssh.PublicKey, error) {
	key, err := ssh.NewPublicKey(pub.Key())
	if err != nil {
		return nil, fmt.Errorf("ssh public key: %w", err)
	}
	return key, nil
}

// AuthorizedKey renders pub in authorized_keys form ("ssh-ed25519 AAAA...").
func AuthorizedKey(pub domain.Ed25519Public) (string, error) {
	key, err := SSHPublicKey(pub)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimSpace(ssh.MarshalAuthorizedKey(key))), nil
}
