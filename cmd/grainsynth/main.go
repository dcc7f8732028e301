// Command grainsynth synthesizes a polycrystalline volume from target
// statistics files and writes the labeled grid plus the per-grain and
// misorientation tables.
//
// Usage:
//
//	grainsynth -stats stats.txt -axisodf axisodf.txt -odf odf.txt \
//	    -mdf mdf.txt -micro micro.txt -grains 1000 -out volume.vtk
//
// A TOML config file (-config) may carry the same settings; explicit
// flags override it.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
	"github.com/rs/zerolog"

	"github.com/MicroClue/grainsynth/geom"
	"github.com/MicroClue/grainsynth/orient"
	"github.com/MicroClue/grainsynth/synth"
)

// config mirrors the TOML file layout; flags set explicitly on the
// command line override the file's values after it loads.
type config struct {
	StatsFile   string `toml:"stats_file"`
	AxisODFFile string `toml:"axisodf_file"`
	ODFFile     string `toml:"odf_file"`
	MDFFile     string `toml:"mdf_file"`
	MicroFile   string `toml:"micro_file"`

	Grains         int     `toml:"grains"`
	ShapeClass     int     `toml:"shape_class"`
	Crystal        int     `toml:"crystal_structure"`
	Seed           uint64  `toml:"seed"`
	ResX           float64 `toml:"res_x"`
	ResY           float64 `toml:"res_y"`
	ResZ           float64 `toml:"res_z"`
	PackIterations int     `toml:"pack_iterations"`

	OutVTK    string `toml:"out_vtk"`
	OutGrains string `toml:"out_grains"`
	OutMDF    string `toml:"out_mdf"`

	Verbose bool `toml:"verbose"`
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("configuration")
	}
	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	log = log.Level(level)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("synthesis failed")
	}
}

// parseConfig merges the optional TOML file with the command line.
func parseConfig(args []string) (*config, error) {
	fs := flag.NewFlagSet("grainsynth", flag.ContinueOnError)
	configPath := fs.String("config", "", "TOML configuration file")

	fileCfg := &config{}
	fs.StringVar(&fileCfg.StatsFile, "stats", "", "grain statistics file")
	fs.StringVar(&fileCfg.AxisODFFile, "axisodf", "", "axis ODF file")
	fs.StringVar(&fileCfg.ODFFile, "odf", "", "ODF file")
	fs.StringVar(&fileCfg.MDFFile, "mdf", "", "MDF file")
	fs.StringVar(&fileCfg.MicroFile, "micro", "", "microtexture file")
	fs.IntVar(&fileCfg.Grains, "grains", 0, "target grain count")
	fs.IntVar(&fileCfg.ShapeClass, "shape", int(geom.Ellipsoid), "shape class (1 ellipsoid, 2 superellipsoid, 3 cuboctahedron)")
	fs.IntVar(&fileCfg.Crystal, "crystal", int(orient.Cubic), "crystal structure (1 hexagonal, 2 cubic)")
	fs.Uint64Var(&fileCfg.Seed, "seed", 0, "RNG seed (0 = fixed default)")
	fs.Float64Var(&fileCfg.ResX, "resx", 0.25, "voxel pitch x")
	fs.Float64Var(&fileCfg.ResY, "resy", 0.25, "voxel pitch y")
	fs.Float64Var(&fileCfg.ResZ, "resz", 0.25, "voxel pitch z")
	fs.IntVar(&fileCfg.PackIterations, "packiters", 0, "packing iterations (0 = default)")
	fs.StringVar(&fileCfg.OutVTK, "out", "volume.vtk", "output VTK file")
	fs.StringVar(&fileCfg.OutGrains, "graindata", "graindata.txt", "output grain table")
	fs.StringVar(&fileCfg.OutMDF, "mdfout", "mdf.txt", "output MDF table")
	fs.BoolVar(&fileCfg.Verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *configPath == "" {
		return fileCfg, nil
	}

	data, err := os.ReadFile(*configPath)
	if err != nil {
		return nil, err
	}
	cfg := &config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Flags set on the command line win over the file.
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	mergeFlagged(cfg, fileCfg, set)

	return cfg, nil
}

// mergeFlagged copies every explicitly flagged value over the file
// configuration.
func mergeFlagged(dst, flagged *config, set map[string]bool) {
	if set["stats"] {
		dst.StatsFile = flagged.StatsFile
	}
	if set["axisodf"] {
		dst.AxisODFFile = flagged.AxisODFFile
	}
	if set["odf"] {
		dst.ODFFile = flagged.ODFFile
	}
	if set["mdf"] {
		dst.MDFFile = flagged.MDFFile
	}
	if set["micro"] {
		dst.MicroFile = flagged.MicroFile
	}
	if set["grains"] {
		dst.Grains = flagged.Grains
	}
	if set["shape"] {
		dst.ShapeClass = flagged.ShapeClass
	}
	if set["crystal"] {
		dst.Crystal = flagged.Crystal
	}
	if set["seed"] {
		dst.Seed = flagged.Seed
	}
	if set["resx"] {
		dst.ResX = flagged.ResX
	}
	if set["resy"] {
		dst.ResY = flagged.ResY
	}
	if set["resz"] {
		dst.ResZ = flagged.ResZ
	}
	if set["packiters"] {
		dst.PackIterations = flagged.PackIterations
	}
	if set["out"] {
		dst.OutVTK = flagged.OutVTK
	}
	if set["graindata"] {
		dst.OutGrains = flagged.OutGrains
	}
	if set["mdfout"] {
		dst.OutMDF = flagged.OutMDF
	}
	if set["v"] {
		dst.Verbose = flagged.Verbose
	}
}

func run(cfg *config, log zerolog.Logger) error {
	crystal := orient.Crystal(cfg.Crystal)
	tables, err := loadTables(cfg, crystal)
	if err != nil {
		return fmt.Errorf("loading statistics: %w", err)
	}

	opts := synth.DefaultOptions()
	opts.Grains = cfg.Grains
	opts.Shape = geom.Class(cfg.ShapeClass)
	opts.Crystal = crystal
	opts.Seed = cfg.Seed
	opts.ResX, opts.ResY, opts.ResZ = cfg.ResX, cfg.ResY, cfg.ResZ
	if cfg.PackIterations > 0 {
		opts.PackIterations = cfg.PackIterations
	}
	opts.Logger = log

	s, err := synth.New(tables, opts)
	if err != nil {
		return err
	}
	if err = s.Run(); err != nil {
		return err
	}

	return writeOutputs(cfg, s, log)
}
