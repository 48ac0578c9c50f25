package domain

// RewardResult is the payout of a single harvest
type RewardResult struct {
	Coins     int64     `json:"coins"`
	PetalType PlantType `json:"petal_type,omitempty"`
	Petals    int64     `json:"petals"`
}

// IsZero reports whether the reward pays nothing
func (r RewardResult) IsZero() bool {
	return r.Coins == 0 && r.Petals == 0
}
