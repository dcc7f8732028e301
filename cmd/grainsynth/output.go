package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/MicroClue/grainsynth/orient"
	"github.com/MicroClue/grainsynth/stats"
	"github.com/MicroClue/grainsynth/synth"
	"github.com/MicroClue/grainsynth/vtk"
)

// loadTables reads the five statistics files named by the config.
func loadTables(cfg *config, crystal orient.Crystal) (*stats.Tables, error) {
	f, err := os.Open(cfg.StatsFile)
	if err != nil {
		return nil, err
	}
	tables, err := stats.Load(f)
	f.Close()
	if err != nil {
		return nil, err
	}

	if err = loadInto(cfg.AxisODFFile, tables.LoadAxisODF); err != nil {
		return nil, err
	}
	if err = loadInto(cfg.ODFFile, func(r io.Reader) error {
		return tables.LoadODF(r, crystal.ODFBins())
	}); err != nil {
		return nil, err
	}
	if err = loadInto(cfg.MDFFile, tables.LoadMDF); err != nil {
		return nil, err
	}
	if err = loadInto(cfg.MicroFile, tables.LoadMicrotexture); err != nil {
		return nil, err
	}

	return tables, nil
}

func loadInto(path string, load func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return load(f)
}

// writeOutputs emits the VTK volume, the per-grain table, and the MDF.
func writeOutputs(cfg *config, s *synth.Synthesizer, log zerolog.Logger) error {
	if err := writeFile(cfg.OutVTK, func(w *bufio.Writer) error {
		return vtk.Write(w, s.Grid())
	}); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.OutVTK, err)
	}
	log.Info().Str("path", cfg.OutVTK).Msg("volume written")

	if err := writeFile(cfg.OutGrains, func(w *bufio.Writer) error {
		grains, err := s.Grains()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\n", len(grains))
		for _, g := range grains {
			surface := 0
			if g.Surface {
				surface = 1
			}
			fmt.Fprintf(w, "%d\t%g\t%d\t%d\t%g\t%g\t%g\n",
				g.ID, g.EquivDiameter, g.NumNeighbors, surface,
				g.Euler[0], g.Euler[1], g.Euler[2])
		}

		return nil
	}); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.OutGrains, err)
	}
	log.Info().Str("path", cfg.OutGrains).Msg("grain table written")

	if err := writeFile(cfg.OutMDF, func(w *bufio.Writer) error {
		mdf, err := s.MDF()
		if err != nil {
			return err
		}
		for _, d := range mdf {
			fmt.Fprintf(w, "%g\n", d)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.OutMDF, err)
	}
	log.Info().Str("path", cfg.OutMDF).Msg("MDF written")

	return nil
}

func writeFile(path string, fill func(*bufio.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err = fill(w); err != nil {
		f.Close()

		return err
	}
	if err = w.Flush(); err != nil {
		f.Close()

		return err
	}

	return f.Close()
}
