// Package config loads solve profiles from HCL files. Profiles carry the
// defaults for a solve run; command-line flags override individual fields.
package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Profile is the root of a solve-profile file.
type Profile struct {
	Solve SolveSettings `hcl:"solve,block"`
}

// SolveSettings configures a solve run.
type SolveSettings struct {
	HeroRange    string    `hcl:"hero_range,optional"`
	VillainRange string    `hcl:"villain_range,optional"`
	Board        string    `hcl:"board,optional"`
	Iterations   int       `hcl:"iterations,optional"`
	Boards       int       `hcl:"boards,optional"`
	Seed         int64     `hcl:"seed,optional"`
	BetSizes     []float64 `hcl:"bet_sizes,optional"`
	MaxRaises    int       `hcl:"max_raises,optional"`
	VillainHands int       `hcl:"villain_hands,optional"`
}

// Default returns the built-in solve profile: the classic single 1bb bet
// size, three sampled boards, five villain hands per hero class.
func Default() *Profile {
	return &Profile{
		Solve: SolveSettings{
			Iterations:   500,
			Boards:       3,
			BetSizes:     []float64{1.0},
			MaxRaises:    2,
			VillainHands: 5,
		},
	}
}

// Load parses an HCL profile file over the defaults.
func Load(path string) (*Profile, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %s", path, diags.Error())
	}

	profile := Default()
	if diags := gohcl.DecodeBody(file.Body, nil, profile); diags.HasErrors() {
		return nil, fmt.Errorf("decode %s: %s", path, diags.Error())
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return profile, nil
}

// Validate rejects profiles that cannot drive a solve run.
func (p *Profile) Validate() error {
	s := p.Solve
	if s.Iterations <= 0 {
		return fmt.Errorf("iterations must be > 0")
	}
	if s.Boards <= 0 {
		return fmt.Errorf("boards must be > 0")
	}
	if len(s.BetSizes) == 0 {
		return fmt.Errorf("at least one bet size is required")
	}
	if s.MaxRaises < 0 {
		return fmt.Errorf("max raises cannot be negative")
	}
	if s.VillainHands <= 0 {
		return fmt.Errorf("villain hands must be > 0")
	}
	return nil
}
