package entity

// RoundOrder is a full round sent by a remote peer: the attacker and every
// salvo it fires, in order.
type RoundOrder struct {
	ID         string       `json:"id"`
	AttackerID string       `json:"attacker_id"`
	Salvos     []SalvoOrder `json:"salvos"`
}

type SalvoOrder struct {
	Anchor Cell  `json:"anchor"`
	Shape  Shape `json:"shape"`
	Size   int   `json:"size"`
}

// Rejection tells a remote peer why its round was refused.
type Rejection struct {
	RoundID string `json:"round_id"`
	Reason  string `json:"reason"`
}
