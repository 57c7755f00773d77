package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/strodow/plucky/internal/decklink"
	"github.com/strodow/plucky/internal/frame"
	"github.com/strodow/plucky/internal/output"
	"github.com/strodow/plucky/internal/render"
	"github.com/strodow/plucky/internal/slide"
)

// pngSurface stands in for the fullscreen window when running headless:
// every delivered program frame is written to one PNG file.
type pngSurface struct {
	path string
}

func (s *pngSurface) ShowFullscreenOn(g output.Geometry) error { return nil }
func (s *pngSurface) Hide() error                              { return nil }

func (s *pngSurface) SetFrame(b *frame.Buffer) error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, b.ToImage())
}

func newTakeCommand(ctx *commandContext) *cobra.Command {
	var (
		layout     string
		text       string
		background string
		out        string
	)

	cmd := &cobra.Command{
		Use:   "take",
		Short: "Run the preview/take pipeline against the device simulator",
		Long: "Builds a background and content slide, takes them to program, and routes\n" +
			"the frame to a headless screen target and a simulated SDI keyer pair.",
		RunE: func(cmd *cobra.Command, args []string) error {
			coll, err := ctx.templates()
			if err != nil {
				return err
			}
			fonts, err := ctx.fonts()
			if err != nil {
				return err
			}
			renderer := &render.CachingRenderer{
				Inner: render.NewRaster(fonts, ctx.log),
				Cache: render.NewCache(),
			}

			cfg := ctx.cfg
			router := output.NewRouter(ctx.log)
			router.Notify = func(target string, err error) {
				fmt.Printf("[!] Output %s failed: %v\n", target, err)
			}

			screen := output.NewScreenTarget("screen", &pngSurface{path: out}, output.Geometry{
				X: cfg.Screen.X, Y: cfg.Screen.Y,
				Width: cfg.Screen.Width, Height: cfg.Screen.Height,
			})
			router.Register(screen)
			if err := screen.SetActive(true); err != nil {
				return err
			}

			sim := decklink.NewSimulator()
			sess := decklink.NewSession(sim, ctx.log)
			mode := decklink.VideoMode{
				Width: cfg.Output.Width, Height: cfg.Output.Height,
				FrameRateNum: cfg.Sdi.FrameRateNum, FrameRateDen: cfg.Sdi.FrameRateDen,
			}
			sdi := output.NewSdiTarget("sdi", sess, cfg.Sdi.FillDevice, cfg.Sdi.KeyDevice, mode)
			router.Register(sdi)
			if err := sdi.SetActive(true); err != nil {
				return err
			}
			defer sess.Close()

			ctrl := output.NewController(renderer, coll, router, ctx.log, cfg.Output.Width, cfg.Output.Height)

			var bg *slide.Slide
			if background != "" {
				bg = slide.New(layout)
				bg.IsBackground = true
				bg.BackgroundRef = background
			}
			content := slide.New(layout)
			content.Text["lyrics"] = text

			if _, err := ctrl.UpdatePreview(bg, content); err != nil {
				return err
			}
			if err := ctrl.Take(); err != nil {
				return err
			}

			fill, key := sim.LastFrames()
			fmt.Printf("[*] Program frame routed to %d targets\n", len(router.Targets()))
			fmt.Printf("[*] Screen frame written to %s\n", out)
			fmt.Printf("[*] SDI pair sent: fill=%d bytes key=%d bytes, session %s\n",
				len(fill), len(key), sess.State())
			return nil
		},
	}

	cmd.Flags().StringVar(&layout, "layout", "Lyrics Lower Third", "layout name to resolve")
	cmd.Flags().StringVar(&text, "text", "Amazing grace, how sweet the sound", "lyric text for the content slide")
	cmd.Flags().StringVar(&background, "background", "", "background source for the background slide")
	cmd.Flags().StringVarP(&out, "out", "o", "program.png", "path the screen target writes frames to")

	return cmd
}
