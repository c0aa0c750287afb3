package emu

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"yane/emu/log"
	"yane/hw"
)

const numPalettes = 8

// PatternTableFile returns the name of the PNG file of a pattern table
// rendered with a palette.
func PatternTableFile(table, palette uint8) string {
	return fmt.Sprintf("pattern%d_palette%d.png", table, palette)
}

// ExportPatternTables renders both pattern tables with each of the 8
// palettes and saves them as PNG files in dir. The PPU must not be clocked
// while the export is in progress. It returns the paths of the written
// files.
func ExportPatternTables(ppu *hw.PPU, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	paths := make([]string, 2*numPalettes)
	var g errgroup.Group
	for table := range uint8(2) {
		for palette := range uint8(numPalettes) {
			i := int(table)*numPalettes + int(palette)
			paths[i] = filepath.Join(dir, PatternTableFile(table, palette))
			g.Go(func() error {
				return savePNG(ppu.PatternTable(table, palette), paths[i])
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("pattern tables export: %w", err)
	}

	log.ModEmu.InfoZ("pattern tables exported").
		String("dir", dir).
		Int("files", len(paths)).
		End()
	return paths, nil
}

func savePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
