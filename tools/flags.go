package tools

import (
	"flag"
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ecopia-map/dem_animator/internal/pipeline"
)

type FlagsGlobal struct {
	Help    *bool `json:"help"`
	Version *bool `json:"version"`
}

// Flags shared by every command
type CommonFlags struct {
	Input            *string  `json:"input"`
	Output           *string  `json:"output"`
	Geographic       *bool    `json:"geographic"`
	ZOffset          *float64 `json:"zoffset"`
	FolderProcessing *bool    `json:"folder"`
	Recursive        *bool    `json:"recursive"`
	Silent           *bool    `json:"silent"`
	Timestamp        *bool    `json:"timestamp"`
	Help             *bool    `json:"help"`
	Version          *bool    `json:"version"`
	Positional       []string `json:"positional"`
}

type FlagsForCommandRender struct {
	CommonFlags
	Frames        *int     `json:"frames"`
	Exaggeration  *float64 `json:"exaggeration"`
	Elevation     *float64 `json:"elevation"`
	AzimuthOffset *float64 `json:"azimuth_offset"`
	Aspect        *string  `json:"aspect"`
	Size          *int     `json:"size"`
	Delay         *int     `json:"delay"`
	Workers       *int     `json:"workers"`
	Labels        *string  `json:"labels"`
}

type FlagsForCommandMesh struct {
	CommonFlags
	Format *string `json:"format"`
}

type FlagsForCommandInfo struct {
	CommonFlags
}

func ParseFlagsGlobal() FlagsGlobal {
	flags := defineGlobalFlags(flag.CommandLine)
	flag.Parse()
	return flags
}

// Registers the global flags. -v is left to glog, which owns it on the command line.
func defineGlobalFlags(flagCommand *flag.FlagSet) FlagsGlobal {
	return FlagsGlobal{
		Help:    defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help."),
		Version: defineBoolFlagCommand(flagCommand, "version", "", false, "Displays the version of dem_animator."),
	}
}

func defineCommonFlags(flagCommand *flag.FlagSet, defaultOutput string) CommonFlags {
	return CommonFlags{
		Input:            defineStringFlagCommand(flagCommand, "input", "i", "", "Specifies the input xyz file/folder."),
		Output:           defineStringFlagCommand(flagCommand, "output", "o", defaultOutput, "Specifies the output file, or the output folder when -folder is set."),
		Geographic:       defineBoolFlagCommand(flagCommand, "geographic", "g", false, "Input x/y are longitude/latitude degrees and are projected to local meters."),
		ZOffset:          defineFloat64FlagCommand(flagCommand, "zoffset", "z", 0, "Vertical offset to apply to points, in input units."),
		FolderProcessing: defineBoolFlagCommand(flagCommand, "folder", "", false, "Enables processing of all xyz files from input folder. Input must be a folder if specified"),
		Recursive:        defineBoolFlagCommand(flagCommand, "recursive", "r", false, "Enables recursive lookup for all .xyz files inside the subfolders"),
		Silent:           defineBoolFlagCommand(flagCommand, "silent", "", false, "Use to suppress all the non-error messages."),
		Timestamp:        defineBoolFlagCommand(flagCommand, "timestamp", "t", true, "Prefixes progress messages with the current time."),
		Help:             defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help."),
		Version:          defineBoolFlagCommand(flagCommand, "version", "v", false, "Displays the version of dem_animator."),
	}
}

func ParseFlagsForCommandRender(args []string, output io.Writer) (FlagsForCommandRender, error) {
	flagCommand := newFlagSet("command-render", output)

	flags := FlagsForCommandRender{
		CommonFlags:   defineCommonFlags(flagCommand, pipeline.DefaultOutput),
		Frames:        defineIntFlagCommand(flagCommand, "frames", "f", 0, "Number of frames of a full turn, at least 1."),
		Exaggeration:  defineFloat64FlagCommand(flagCommand, "exaggeration", "x", pipeline.DefaultVerticalExaggeration, "Vertical exaggeration applied to the z span."),
		Elevation:     defineFloat64FlagCommand(flagCommand, "elevation", "e", pipeline.DefaultCameraElevationDeg, "Camera elevation in degrees."),
		AzimuthOffset: defineFloat64FlagCommand(flagCommand, "azimuth-offset", "a", pipeline.DefaultAzimuthOffsetDeg, "Added to the frame angle to obtain the camera azimuth, in degrees."),
		Aspect:        defineStringFlagCommand(flagCommand, "aspect", "", "computed", "Axis scaling, can be 'computed' (spans of the data, z exaggerated) or 'equal' (cube)."),
		Size:          defineIntFlagCommand(flagCommand, "size", "s", pipeline.DefaultFrameSize, "Frame width and height in pixels."),
		Delay:         defineIntFlagCommand(flagCommand, "delay", "", pipeline.DefaultFrameDelay, "Delay between frames in hundredths of a second."),
		Workers:       defineIntFlagCommand(flagCommand, "workers", "w", runtime.NumCPU(), "Number of frames rendered concurrently."),
		Labels:        defineStringFlagCommand(flagCommand, "labels", "", strings.Join(pipeline.DefaultAxisLabels[:], ","), "Comma separated x, y, z axis labels."),
	}

	if err := flagCommand.Parse(args); err != nil {
		return flags, errors.Wrap(pipeline.ErrUsage, err.Error())
	}
	flags.Positional = flagCommand.Args()
	if *flags.Help {
		flagCommand.PrintDefaults()
	}
	return flags, nil
}

func ParseFlagsForCommandMesh(args []string, output io.Writer) (FlagsForCommandMesh, error) {
	flagCommand := newFlagSet("command-mesh", output)

	flags := FlagsForCommandMesh{
		CommonFlags: defineCommonFlags(flagCommand, pipeline.DefaultMeshOutput),
		Format:      defineStringFlagCommand(flagCommand, "format", "", "ply", "Output format, can be 'ply' (triangulated surface) or 'xyz' (normalized points)."),
	}

	if err := flagCommand.Parse(args); err != nil {
		return flags, errors.Wrap(pipeline.ErrUsage, err.Error())
	}
	flags.Positional = flagCommand.Args()
	if *flags.Help {
		flagCommand.PrintDefaults()
	}
	return flags, nil
}

func ParseFlagsForCommandInfo(args []string, output io.Writer) (FlagsForCommandInfo, error) {
	flagCommand := newFlagSet("command-info", output)

	flags := FlagsForCommandInfo{
		CommonFlags: defineCommonFlags(flagCommand, ""),
	}

	if err := flagCommand.Parse(args); err != nil {
		return flags, errors.Wrap(pipeline.ErrUsage, err.Error())
	}
	flags.Positional = flagCommand.Args()
	if *flags.Help {
		flagCommand.PrintDefaults()
	}
	return flags, nil
}

// Converts the parsed flags into validated render options. The legacy positional
// form INPUT FRAMES [OUTPUT] fills the values not given as flags.
func (f FlagsForCommandRender) Options() (*pipeline.Options, error) {
	opts := pipeline.NewOptions(pipeline.CommandRender)
	f.CommonFlags.apply(opts)

	opts.FrameCount = *f.Frames
	opts.VerticalExaggeration = *f.Exaggeration
	opts.CameraElevationDeg = *f.Elevation
	opts.AzimuthOffsetDeg = *f.AzimuthOffset
	opts.AspectMode = pipeline.ParseAspectMode(*f.Aspect)
	opts.FrameSize = *f.Size
	opts.FrameDelay = *f.Delay
	opts.Workers = *f.Workers
	opts.AxisLabels = pipeline.ParseAxisLabels(*f.Labels)

	positional := f.Positional
	if len(positional) > 3 {
		return nil, errors.Wrapf(pipeline.ErrUsage, "too many arguments: %v", positional)
	}
	if len(positional) > 0 && opts.Input == "" {
		opts.Input = positional[0]
	}
	if len(positional) > 1 && opts.FrameCount == 0 {
		frameCount, err := strconv.Atoi(positional[1])
		if err != nil {
			return nil, errors.Wrapf(pipeline.ErrUsage, "frame count must be an integer, got %q", positional[1])
		}
		opts.FrameCount = frameCount
	}
	if len(positional) > 2 && opts.Output == pipeline.DefaultOutput {
		opts.Output = positional[2]
	}
	applyFolderOutput(opts, pipeline.DefaultOutput)

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// Converts the parsed flags into validated mesh options. Positional form is INPUT [OUTPUT].
func (f FlagsForCommandMesh) Options() (*pipeline.Options, error) {
	opts := pipeline.NewOptions(pipeline.CommandMesh)
	f.CommonFlags.apply(opts)
	opts.MeshFormat = pipeline.ParseMeshFormat(*f.Format)
	if err := f.CommonFlags.applyPositional(opts, pipeline.DefaultMeshOutput); err != nil {
		return nil, err
	}
	applyFolderOutput(opts, pipeline.DefaultMeshOutput)
	if opts.MeshFormat == pipeline.MeshFormatXyz && opts.Output == pipeline.DefaultMeshOutput {
		opts.Output = pipeline.DefaultPointsOutput
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// Converts the parsed flags into validated info options. Positional form is INPUT.
func (f FlagsForCommandInfo) Options() (*pipeline.Options, error) {
	opts := pipeline.NewOptions(pipeline.CommandInfo)
	f.CommonFlags.apply(opts)
	if len(f.Positional) > 1 {
		return nil, errors.Wrapf(pipeline.ErrUsage, "too many arguments: %v", f.Positional)
	}
	if err := f.CommonFlags.applyPositional(opts, ""); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func (f CommonFlags) apply(opts *pipeline.Options) {
	opts.Input = *f.Input
	opts.Output = *f.Output
	opts.Geographic = *f.Geographic
	opts.ZOffset = *f.ZOffset
	opts.FolderProcessing = *f.FolderProcessing
	opts.Recursive = *f.Recursive
}

func (f CommonFlags) applyPositional(opts *pipeline.Options, defaultOutput string) error {
	if len(f.Positional) > 2 {
		return errors.Wrapf(pipeline.ErrUsage, "too many arguments: %v", f.Positional)
	}
	if len(f.Positional) > 0 && opts.Input == "" {
		opts.Input = f.Positional[0]
	}
	if len(f.Positional) > 1 && opts.Output == defaultOutput {
		opts.Output = f.Positional[1]
	}
	return nil
}

// In folder mode an output left to its file default becomes the default output folder
func applyFolderOutput(opts *pipeline.Options, defaultOutput string) {
	if opts.FolderProcessing && opts.Output == defaultOutput {
		opts.Output = pipeline.DefaultOutputFolder
	}
}

func newFlagSet(name string, output io.Writer) *flag.FlagSet {
	flagCommand := flag.NewFlagSet(name, flag.ContinueOnError)
	if output != nil {
		flagCommand.SetOutput(output)
	}
	return flagCommand
}

func defineStringFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue string, usage string) *string {
	var output string
	flagCommand.StringVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.StringVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineIntFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue int, usage string) *int {
	var output int
	flagCommand.IntVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.IntVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineFloat64FlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue float64, usage string) *float64 {
	var output float64
	flagCommand.Float64Var(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.Float64Var(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineBoolFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flagCommand.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}
