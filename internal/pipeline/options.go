package pipeline

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

type AspectMode string
type Command string
type MeshFormat string

const (
	// Axis spans are taken from the bounding box, the z span multiplied by the vertical exaggeration
	AspectComputed AspectMode = "COMPUTED"
	// Every axis is scaled to the same length, the box is rendered as a cube
	AspectEqual AspectMode = "EQUAL"
)

const (
	// Triangulated surface as an ASCII PLY mesh
	MeshFormatPly MeshFormat = "PLY"
	// Normalized points in the input xyz format
	MeshFormatXyz MeshFormat = "XYZ"
)

const (
	CommandRender Command = "render"
	CommandMesh   Command = "mesh"
	CommandInfo   Command = "info"
)

const (
	DefaultOutput               = "output.gif"
	DefaultMeshOutput           = "output.ply"
	DefaultPointsOutput         = "output.xyz"
	DefaultOutputFolder         = "output"
	DefaultVerticalExaggeration = 5.0
	DefaultCameraElevationDeg   = 45.0
	DefaultAzimuthOffsetDeg     = 30.0
	DefaultFrameSize            = 1000
	DefaultFrameDelay           = 10
)

var DefaultAxisLabels = [3]string{"Ost-West", "Nord-Süd", "Höhe ü. M."}

func (e AspectMode) String() string {
	if e == AspectComputed {
		return "COMPUTED"
	} else if e == AspectEqual {
		return "EQUAL"
	}
	return ""
}

func ParseAspectMode(value string) AspectMode {
	normalizedValue := strings.Trim(strings.ToUpper(value), " ")
	if normalizedValue == "COMPUTED" {
		return AspectComputed
	} else if normalizedValue == "EQUAL" {
		return AspectEqual
	}
	return ""
}

func ParseMeshFormat(value string) MeshFormat {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "PLY":
		return MeshFormatPly
	case "XYZ":
		return MeshFormatXyz
	}
	return ""
}

// Splits a comma separated label list, keeping the defaults for missing entries
func ParseAxisLabels(value string) [3]string {
	labels := DefaultAxisLabels
	if strings.TrimSpace(value) == "" {
		return labels
	}
	for i, label := range strings.Split(value, ",") {
		if i >= len(labels) {
			break
		}
		labels[i] = strings.TrimSpace(label)
	}
	return labels
}

// Contains the options of a single run of the pipeline
type Options struct {
	Command              Command
	Input                string     // Input xyz file/folder
	Output               string     // Output animation or mesh file, or folder when FolderProcessing is set
	FrameCount           int        // Number of frames of a full turn
	VerticalExaggeration float64    // Multiplier applied to the z span only
	CameraElevationDeg   float64    // Constant camera tilt
	AzimuthOffsetDeg     float64    // Added to every frame angle when rendering
	AspectMode           AspectMode // How axis spans are derived from the bounding box
	MeshFormat           MeshFormat // What the mesh command writes
	AxisLabels           [3]string  // x, y, z axis labels
	FrameSize            int        // Edge of a square frame in pixels
	FrameDelay           int        // Delay between frames in 1/100 s
	Workers              int        // Number of concurrent frame renderers
	Geographic           bool       // Input x/y are longitude/latitude degrees
	ZOffset              float64    // Vertical offset applied to every point
	FolderProcessing     bool       // Process every xyz file in the Input folder
	Recursive            bool       // Recursive lookup of xyz files in subfolders
}

// Builds the options with every optional field set to its default
func NewOptions(command Command) *Options {
	output := DefaultOutput
	if command == CommandMesh {
		output = DefaultMeshOutput
	}
	return &Options{
		Command:              command,
		Output:               output,
		VerticalExaggeration: DefaultVerticalExaggeration,
		CameraElevationDeg:   DefaultCameraElevationDeg,
		AzimuthOffsetDeg:     DefaultAzimuthOffsetDeg,
		AspectMode:           AspectComputed,
		MeshFormat:           MeshFormatPly,
		AxisLabels:           DefaultAxisLabels,
		FrameSize:            DefaultFrameSize,
		FrameDelay:           DefaultFrameDelay,
		Workers:              1,
	}
}

func (opt *Options) Copy() *Options {
	newOpt := *opt
	return &newOpt
}

// Checks the options before any I/O happens. The returned error wraps ErrUsage.
func (opt *Options) Validate() error {
	if strings.TrimSpace(opt.Input) == "" {
		return errors.Wrap(ErrUsage, "missing input path")
	}
	if opt.Command == CommandRender && opt.FrameCount < 1 {
		return errors.Wrapf(ErrUsage, "frame count must be an integer >= 1, got %d", opt.FrameCount)
	}
	if opt.Command == CommandMesh && opt.MeshFormat == "" {
		return errors.Wrap(ErrUsage, "format should be either PLY or XYZ")
	}
	if opt.AspectMode == "" {
		return errors.Wrap(ErrUsage, "aspect should be either COMPUTED or EQUAL")
	}
	if opt.VerticalExaggeration <= 0 || math.IsNaN(opt.VerticalExaggeration) || math.IsInf(opt.VerticalExaggeration, 0) {
		return errors.Wrapf(ErrUsage, "vertical exaggeration must be a positive number, got %v", opt.VerticalExaggeration)
	}
	if math.IsNaN(opt.CameraElevationDeg) || opt.CameraElevationDeg < -90 || opt.CameraElevationDeg > 90 {
		return errors.Wrapf(ErrUsage, "camera elevation must be within [-90, 90] degrees, got %v", opt.CameraElevationDeg)
	}
	if opt.FrameSize < 16 {
		return errors.Wrapf(ErrUsage, "frame size must be at least 16 pixels, got %d", opt.FrameSize)
	}
	if opt.FrameDelay < 0 {
		return errors.Wrapf(ErrUsage, "frame delay cannot be negative, got %d", opt.FrameDelay)
	}
	if opt.Workers < 1 {
		return errors.Wrapf(ErrUsage, "at least one worker is needed, got %d", opt.Workers)
	}
	return nil
}
