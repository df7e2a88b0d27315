package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/nickingravallo/TurboFire/internal/evaluator"
)

type GenCmd struct {
	Out string `help:"path for the generated table file" default:"handranks.dat"`
}

func (cmd *GenCmd) Run(ctx context.Context) error {
	log.Info().Msg("generating 5-card hand rank tables")

	tables, err := evaluator.BuildFiveCardTables()
	if err != nil {
		return fmt.Errorf("build tables: %w", err)
	}
	log.Info().
		Int("products", len(tables.Products)).
		Msg("tables built and verified")

	if err := tables.Save(cmd.Out); err != nil {
		return err
	}
	log.Info().Str("path", cmd.Out).Msg("wrote hand rank tables")
	return nil
}
