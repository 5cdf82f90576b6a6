package models

import (
	"encoding/json"
	"fmt"
	"io"
)

// Seed is the directory data and opening balances loaded into a fresh
// deployment, either the in-memory store or MongoDB.
type Seed struct {
	Providers []Provider        `json:"providers"`
	Vehicles  []Vehicle         `json:"vehicles"`
	Coupons   []Coupon          `json:"coupons"`
	Wallets   map[string]Amount `json:"wallets"`
}

// DecodeSeed reads a JSON seed, rejecting unknown fields and vehicles that
// do not name a provider listed in the same seed.
func DecodeSeed(r io.Reader) (*Seed, error) {
	var seed Seed
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&seed); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	providers := make(map[string]struct{}, len(seed.Providers))
	for _, p := range seed.Providers {
		providers[p.ID] = struct{}{}
	}
	for _, v := range seed.Vehicles {
		if v.ProviderID == "" {
			return nil, fmt.Errorf("seed vehicle %s has no provider", v.ID)
		}
		if _, ok := providers[v.ProviderID]; !ok {
			return nil, fmt.Errorf("seed vehicle %s references unknown provider %s", v.ID, v.ProviderID)
		}
	}
	return &seed, nil
}
