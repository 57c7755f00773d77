package main

import (
	"fmt"
	"image/png"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strodow/plucky/internal/frame"
	"github.com/strodow/plucky/internal/render"
	"github.com/strodow/plucky/internal/slide"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var (
		layout     string
		texts      []string
		background string
		out        string
		width      int
		height     int
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one slide scene to a PNG file",
		RunE: func(cmd *cobra.Command, args []string) error {
			coll, err := ctx.templates()
			if err != nil {
				return err
			}
			fonts, err := ctx.fonts()
			if err != nil {
				return err
			}
			if width == 0 {
				width = ctx.cfg.Output.Width
			}
			if height == 0 {
				height = ctx.cfg.Output.Height
			}

			renderer := render.NewRaster(fonts, ctx.log)

			content := slide.New(layout)
			for _, kv := range texts {
				key, value, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("--text %q is not box_id=value", kv)
				}
				content.Text[key] = value
			}

			var bg *frame.Buffer
			if background != "" {
				bgSlide := slide.New(layout)
				bgSlide.IsBackground = true
				bgSlide.BackgroundRef = background
				bg, err = renderer.Render(bgSlide, coll.Resolve(layout), width, height)
				if err != nil {
					return fmt.Errorf("render background: %w", err)
				}
			}
			fg, err := renderer.Render(content, coll.Resolve(layout), width, height)
			if err != nil {
				return fmt.Errorf("render content: %w", err)
			}
			fb, err := frame.Compose(bg, fg)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()
			if err := png.Encode(f, fb.ToImage()); err != nil {
				return fmt.Errorf("encode png: %w", err)
			}
			fmt.Printf("[*] Rendered %dx%d scene to %s\n", width, height, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&layout, "layout", "Lyrics Lower Third", "layout name to resolve")
	cmd.Flags().StringArrayVar(&texts, "text", nil, "text content as box_id=value, repeatable")
	cmd.Flags().StringVar(&background, "background", "", "background source: #RRGGBB[AA], image path, pdf:path#page or qr:payload")
	cmd.Flags().StringVarP(&out, "out", "o", "slide.png", "output PNG path")
	cmd.Flags().IntVar(&width, "width", 0, "frame width, defaults to configured output width")
	cmd.Flags().IntVar(&height, "height", 0, "frame height, defaults to configured output height")

	return cmd
}
