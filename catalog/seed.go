package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"storefront/models"
)

//go:embed seed/catalog.json
var seedJSON []byte

type Seed struct {
	Categories []models.Category `json:"categories"`
	Products   []models.Product  `json:"products"`
}

// LoadSeed decodes the catalog shipped with the binary.
func LoadSeed() (*Seed, error) {
	return ParseSeed(seedJSON)
}

func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to decode catalog seed: %w", err)
	}
	return &seed, nil
}

func NewSeedIndex() (*Index, error) {
	seed, err := LoadSeed()
	if err != nil {
		return nil, err
	}
	return NewIndex(seed.Products, seed.Categories)
}
