package pkg

import (
	"context"
	stdio "io"
	"strconv"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"github.com/ecopia-map/dem_animator/internal/frames"
	"github.com/ecopia-map/dem_animator/internal/io"
	"github.com/ecopia-map/dem_animator/internal/pipeline"
	"github.com/ecopia-map/dem_animator/internal/render"
	"github.com/ecopia-map/dem_animator/pkg/algorithm_manager"
	"github.com/ecopia-map/dem_animator/tools"
)

type IAnimator interface {
	RunAnimator(ctx context.Context, opts *pipeline.Options) error
}

type Animator struct {
	fileFinder       tools.FileFinder
	algorithmManager algorithm_manager.AlgorithmManager
}

func NewAnimator(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager) IAnimator {
	return &Animator{
		fileFinder:       fileFinder,
		algorithmManager: algorithmManager,
	}
}

// Starts the animation process
func (animator *Animator) RunAnimator(ctx context.Context, opts *pipeline.Options) error {
	tools.LogOutput("Preparing list of files to process...")

	xyzFiles, err := animator.fileFinder.GetXyzFilesToProcess(opts)
	if err != nil {
		return err
	}

	for i, filePath := range xyzFiles {
		tools.LogOutput("Processing file " + strconv.Itoa(i+1) + "/" + strconv.Itoa(len(xyzFiles)))
		if err := animator.processXyzFile(ctx, filePath, opts); err != nil {
			return err
		}
	}

	return nil
}

func (animator *Animator) processXyzFile(ctx context.Context, filePath string, opts *pipeline.Options) error {
	scene, err := prepareScene(filePath, opts, animator.algorithmManager)
	if err != nil {
		return err
	}

	sequence, err := frames.NewSequencer(frames.ConfigFromOptions(opts)).Sequence(scene.Points.BoundingBox(), opts.FrameCount)
	if err != nil {
		return err
	}

	tools.LogOutput("> rendering", len(sequence), "frames...")
	exporter := io.NewGifExporter(len(sequence), opts.FrameDelay)
	if err := animator.renderFrames(ctx, scene, sequence, exporter, opts.Workers); err != nil {
		return err
	}

	outputPath := outputPathFor(filePath, opts, ".gif")
	tools.LogOutput("> exporting animation to", outputPath)
	return tools.WriteFileAtomically(outputPath, func(w stdio.Writer) error {
		return exporter.Export(w)
	})
}

// Renders every frame of the sequence into the sink with a producer goroutine and
// numConsumers consumer goroutines. The first error cancels the remaining work.
func (animator *Animator) renderFrames(ctx context.Context, scene *render.Scene, sequence frames.Sequence, sink io.FrameSink, numConsumers int) error {
	if numConsumers < 1 {
		numConsumers = 1
	}

	group, groupCtx := errgroup.WithContext(ctx)

	// init channel where to submit work with a buffer 5 times greater than the number of consumers
	workChannel := make(chan *io.WorkUnit, numConsumers*5)

	producer := io.NewStandardProducer(scene, sequence)
	group.Go(func() error {
		return producer.Produce(groupCtx, workChannel)
	})

	renderer := animator.algorithmManager.GetRenderAlgorithm()
	for i := 0; i < numConsumers; i++ {
		consumer := io.NewStandardConsumer(renderer, sink)
		group.Go(func() error {
			return consumer.Consume(groupCtx, workChannel)
		})
	}

	if err := group.Wait(); err != nil {
		glog.Errorf("rendering aborted: %v", err)
		return err
	}
	return nil
}
