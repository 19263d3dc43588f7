package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/ironsheep/avatar-compositor-mcp/internal/imaging"
)

// runCombine implements the combine subcommand: composite an avatar onto a
// background once and write the result to disk.
func runCombine(args []string, stdout io.Writer, debug bool) error {
	fs := flag.NewFlagSet("combine", flag.ContinueOnError)
	fs.SetOutput(stdout)

	background := fs.String("bg", "", "background image path (required)")
	avatar := fs.String("avatar", "", "avatar image path (required)")
	x := fs.Uint("x", 0, "requested avatar X position")
	y := fs.Uint("y", 0, "requested avatar Y position")
	size := fs.Uint("size", 128, "avatar square side in pixels")
	output := fs.String("o", "", "output path, .png, .jpg, .jpeg or .bmp (required)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	switch {
	case *background == "":
		return errors.New("-bg is required")
	case *avatar == "":
		return errors.New("-avatar is required")
	case *output == "":
		return errors.New("-o is required")
	}
	for name, v := range map[string]uint{"x": *x, "y": *y, "size": *size} {
		if uint64(v) > uint64(^uint32(0)) {
			return fmt.Errorf("-%s out of range: %d", name, v)
		}
	}

	out, plan, err := imaging.CombineImagesWithOptions(*background, *avatar,
		uint32(*x), uint32(*y), uint32(*size), imaging.DefaultOptions())
	if err != nil {
		return err
	}
	if debug {
		log.Printf("placed avatar at %v size %v (scale %.3f, overflow %v, skipped %v)",
			plan.Anchor, plan.Size, plan.Scale, plan.Overflow, plan.Skipped)
	}

	if err := imaging.Save(*output, out); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s (%dx%d)\n", *output, out.Bounds().Dx(), out.Bounds().Dy())
	return nil
}
