package memory

import (
	"io"

	"rentify/models"
)

// LoadSeed reads a JSON seed and applies it.
func (s *Store) LoadSeed(r io.Reader) error {
	seed, err := models.DecodeSeed(r)
	if err != nil {
		return err
	}

	for _, p := range seed.Providers {
		s.PutProvider(p)
	}
	for _, v := range seed.Vehicles {
		s.PutVehicle(v)
	}
	for _, c := range seed.Coupons {
		s.PutCoupon(c)
	}
	for userID, balance := range seed.Wallets {
		s.SetBalance(userID, balance)
	}
	return nil
}
