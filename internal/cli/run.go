package cli

import (
	"fmt"
	"image/color"

	"github.com/spf13/cobra"

	"github.com/menta2k/augment"
	"github.com/menta2k/augment/internal/config"
	"github.com/menta2k/augment/internal/utils"
	"github.com/menta2k/augment/pkg/imageio"
	"github.com/menta2k/augment/pkg/item"
	"github.com/menta2k/augment/pkg/transform"
)

func newRunCmd() *cobra.Command {
	var (
		pipelineFile string
		inDir        string
		outDir       string
		ext          string
		quality      int
		lossless     bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Apply a pipeline to every image in a directory",
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

			pipe := augment.NewPipeline(tfm)
			if cfg.Seed != 0 {
				pipe.Seed(cfg.Seed)
			}
			if len(cfg.Fill) == 3 {
				pipe.Options(transform.WithFill(color.NRGBA{
					R: cfg.Fill[0], G: cfg.Fill[1], B: cfg.Fill[2], A: 0xff,
				}))
			}

			if err := utils.EnsureDir(outDir); err != nil {
				return err
			}
			paths, err := utils.ListImageFiles(inDir)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no images found in %s", inDir)
			}

			prog := newProgress(logger)
			written := 0
			for _, path := range paths {
				src, err := imageio.Open(path)
				if err != nil {
					logger.Warn("skipping unreadable image", "path", path, "err", err)
					continue
				}
				it := item.NewImage(src)
				for v := 1; v <= cfg.Variant; v++ {
					res, err := pipe.Apply(it)
					if err != nil {
						return fmt.Errorf("augmenting %s: %w", path, err)
					}
					out := res.(*item.Image)
					dst := utils.GenerateOutputFilename(path, outDir, fmt.Sprintf("_aug%02d", v), ext)
					if err := imageio.Save(out.Pix, dst, ext, quality, lossless); err != nil {
						return fmt.Errorf("saving %s: %w", dst, err)
					}
					logger.Debug("wrote", "path", dst, "bounds", out.Bounds())
					written++
				}
			}
			prog.done(fmt.Sprintf("Wrote %d augmented images from %d inputs", written, len(paths)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&pipelineFile, "pipeline", "c", "", "pipeline TOML file (default: random-resize-crop 224x224)")
	cmd.Flags().StringVar(&inDir, "in", ".", "input image directory")
	cmd.Flags().StringVar(&outDir, "out", "out", "output directory")
	cmd.Flags().StringVar(&ext, "ext", "jpg", "output format: jpg|png|webp")
	cmd.Flags().IntVar(&quality, "quality", 90, "JPEG/WebP output quality (1-100)")
	cmd.Flags().BoolVar(&lossless, "lossless", false, "WebP lossless mode")

	return cmd
}
