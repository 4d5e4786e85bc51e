package cli

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/menta2k/augment/internal/config"
	"github.com/menta2k/augment/internal/utils"
	"github.com/menta2k/augment/pkg/bounds"
	"github.com/menta2k/augment/pkg/item"
	"github.com/menta2k/augment/pkg/transform"
)

func newInspectCmd() *cobra.Command {
	var (
		pipelineFile string
		width        int
		height       int
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show what a pipeline does to a given input size",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg := config.Default()
			if pipelineFile != "" {
				if !utils.FileExists(pipelineFile) {
					return fmt.Errorf("pipeline file %s does not exist", pipelineFile)
				}
				var err error
				cfg, err = config.Load(pipelineFile)
				if err != nil {
					return err
				}
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid pipeline: %w", err)
			}
			tfm, err := cfg.Build()
			if err != nil {
				return err
			}

			var rng *rand.Rand
			if cfg.Seed != 0 {
				rng = rand.New(rand.NewSource(cfg.Seed))
			}
			state := tfm.Sample(rng)

			in := bounds.FromSizes(float64(width), float64(height))
			if p, ok := tfm.(transform.Projective); ok {
				m, err := p.Project(in, state)
				if err != nil {
					return err
				}
				logger.Info("single resampling pass", "map", m)
			} else {
				logger.Info("pipeline requires sequential evaluation")
			}

			// An empty keypoint set rides through the full apply path and
			// carries the resulting bounds out.
			probe := item.NewKeypoints(nil, in)
			res, err := transform.Apply(tfm, probe, transform.WithState(state))
			if err != nil {
				return err
			}

			fmt.Printf("input:  %s\noutput: %s\n", in, res.Bounds())
			return nil
		},
	}

	cmd.Flags().StringVarP(&pipelineFile, "pipeline", "c", "", "pipeline TOML file")
	cmd.Flags().IntVar(&width, "width", 1024, "input width")
	cmd.Flags().IntVar(&height, "height", 768, "input height")

	return cmd
}
