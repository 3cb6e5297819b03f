/*
 * This file is part of the dem_animator distribution (https://github.com/ecopia-map/dem_animator).
 * Copyright (c) 2024 the dem_animator authors
 *
 * This program is free software; you can redistribute it and/or modify it
 * under the terms of the GNU Lesser General Public License Version 3 as
 * published by the Free Software Foundation;
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
 * Lesser General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program. If not, see <http://www.gnu.org/licenses/>.
 *
 * This software also uses third party components. You can find information
 * on their credits and licensing in the file LICENSE-3RD-PARTIES.md that
 * you should have received togheter with the source code.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/ecopia-map/dem_animator/internal/pipeline"
	"github.com/ecopia-map/dem_animator/pkg"
	"github.com/ecopia-map/dem_animator/pkg/algorithm_manager/std_algorithm_manager"
	"github.com/ecopia-map/dem_animator/tools"
)

const VERSION = "1.0.0"

const logo = `
     _                                    _                 _
  __| | ___ _ __ ___     __ _ _ __  (_)_ __ ___   __ _| |_ ___  _ __
 / _  |/ _ \ '_   _ \   / _  | '_ \| | '_   _ \ / _  | __/ _ \| '__|
| (_| |  __/ | | | | | | (_| | | | | | | | | | | (_| | || (_) | |
 \__,_|\___|_| |_| |_|  \__,_|_| |_|_|_| |_| |_|\__,_|\__\___/|_|
  Rotating terrain animations from elevation grids
  Copyright YYYY
`

func main() {
	log.SetFlags(0)
	_ = flag.Set("logtostderr", "true")
	defer glog.Flush()

	flagsGlobal := tools.ParseFlagsGlobal()
	if *flagsGlobal.Help {
		showHelp()
		return
	}
	if *flagsGlobal.Version {
		printVersion()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, flag.Args())
	stop()

	if err != nil {
		glog.Errorf("Error: %v", err)
		glog.Flush()
		os.Exit(pipeline.ExitCode(err))
	}
}

// Dispatches to the command named by the first argument. Without a known command
// name the arguments are handed to render, which accepts INPUT FRAMES [OUTPUT].
func run(ctx context.Context, args []string) error {
	cmd := string(pipeline.CommandRender)
	if len(args) > 0 {
		switch pipeline.Command(args[0]) {
		case pipeline.CommandRender, pipeline.CommandMesh, pipeline.CommandInfo:
			cmd, args = args[0], args[1:]
		}
	}

	switch pipeline.Command(cmd) {
	case pipeline.CommandMesh:
		return mainCommandMesh(args)
	case pipeline.CommandInfo:
		return mainCommandInfo(args)
	default:
		return mainCommandRender(ctx, args)
	}
}

func mainCommandRender(ctx context.Context, args []string) error {
	flags, err := tools.ParseFlagsForCommandRender(args, os.Stderr)
	if err != nil {
		return err
	}
	if handled := handleCommonFlags(flags.CommonFlags); handled {
		return nil
	}

	opts, err := flags.Options()
	if err != nil {
		return err
	}
	if err := validateInput(opts); err != nil {
		return err
	}
	glog.Infof("options: %s", tools.FmtJSONString(opts))

	defer timeTrack(time.Now(), "render")
	err = pkg.NewAnimator(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts)).RunAnimator(ctx, opts)
	if err != nil {
		return err
	}
	tools.LogOutput("Animation Completed")
	return nil
}

func mainCommandMesh(args []string) error {
	flags, err := tools.ParseFlagsForCommandMesh(args, os.Stderr)
	if err != nil {
		return err
	}
	if handled := handleCommonFlags(flags.CommonFlags); handled {
		return nil
	}

	opts, err := flags.Options()
	if err != nil {
		return err
	}
	if err := validateInput(opts); err != nil {
		return err
	}

	err = pkg.NewMeshExporter(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts)).RunMeshExporter(opts)
	if err != nil {
		return err
	}
	tools.LogOutput("Mesh Export Completed")
	return nil
}

func mainCommandInfo(args []string) error {
	flags, err := tools.ParseFlagsForCommandInfo(args, os.Stderr)
	if err != nil {
		return err
	}
	if handled := handleCommonFlags(flags.CommonFlags); handled {
		return nil
	}

	opts, err := flags.Options()
	if err != nil {
		return err
	}
	if err := validateInput(opts); err != nil {
		return err
	}

	return pkg.NewInfoPrinter(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts)).RunInfo(opts, os.Stdout)
}

// Applies help, version and silent flags. Returns true when the command should stop.
func handleCommonFlags(flags tools.CommonFlags) bool {
	if *flags.Help {
		showHelp()
		return true
	}
	if *flags.Version {
		printVersion()
		return true
	}
	if *flags.Timestamp {
		tools.EnableLoggerTimestamp()
	} else {
		tools.DisableLoggerTimestamp()
	}
	if *flags.Silent {
		tools.DisableLogger()
		_ = flag.Set("logtostderr", "false")
	} else {
		tools.EnableLogger()
		printLogo()
	}
	return false
}

// Checks that the input file/folder exists
func validateInput(opts *pipeline.Options) error {
	if _, err := os.Stat(opts.Input); os.IsNotExist(err) {
		return errors.Errorf("input file/folder not found: %s", opts.Input)
	}
	return nil
}

func timeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	tools.LogOutput(fmt.Sprintf("%s took %s", name, elapsed))
}

func printLogo() {
	fmt.Println(strings.ReplaceAll(logo, "YYYY", strconv.Itoa(time.Now().Year())))
}

func showHelp() {
	printLogo()
	fmt.Println("***")
	fmt.Println("dem_animator reads an elevation grid (.xyz), reconstructs its surface with a Delaunay triangulation and renders a looping rotating animation of it")
	printVersion()
	fmt.Println("***")
	fmt.Println("")
	fmt.Println("Usage: dem_animator [render|mesh|info] [flags] [INPUT FRAMES [OUTPUT]]")
	fmt.Println("")
	fmt.Println("Run dem_animator <command> -help for the flags of a command.")
	fmt.Println("")
	fmt.Println("Global flags: ")
	flag.CommandLine.SetOutput(os.Stdout)
	flag.PrintDefaults()
}

func printVersion() {
	fmt.Println("v." + VERSION)
}
