package types

// PersonDoc is the signed payload of a person identity. Its canonical JSON form
// is what gets hashed into the URN and signed by the delegations.
type PersonDoc struct {
	Name        Username `json:"name"`
	Peer        PeerID   `json:"peer"`
	Delegations []string `json:"delegations"`
}

// Person binds a username to a Peer ID under a URN.
type Person struct {
	URN       URN       `json:"urn"`
	Doc       PersonDoc `json:"doc"`
	Signer    PeerID    `json:"signer"`
	Signature []byte    `json:"signature"`
}
