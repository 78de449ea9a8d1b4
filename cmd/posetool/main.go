// posetool is a CLI utility for inspecting and driving creature models
// without a window.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/davecgh/go-spew/spew"

	"github.com/Faultbox/creature-poser/internal/assembly"
	"github.com/Faultbox/creature-poser/internal/config"
	"github.com/Faultbox/creature-poser/internal/engine/camera"
	"github.com/Faultbox/creature-poser/internal/interaction"
	"github.com/Faultbox/creature-poser/internal/joint"
	"github.com/Faultbox/creature-poser/internal/logger"
	"github.com/Faultbox/creature-poser/internal/pose"
	"github.com/Faultbox/creature-poser/internal/remote"
	"github.com/Faultbox/creature-poser/internal/scenegraph"
	"github.com/Faultbox/creature-poser/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "tree", "ls":
		err = cmdTree(os.Stdout, args)
	case "keys":
		err = cmdKeys(os.Stdout)
	case "pose":
		err = cmdPose(os.Stdout, args)
	case "dump":
		err = cmdDump(os.Stdout, args)
	case "run":
		err = cmdRun(os.Stdout, args)
	case "serve":
		err = cmdServe(args)
	case "init":
		err = cmdInit(os.Stdout, args)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `posetool - creature model utility

Usage:
  posetool <command> [options]

Commands:
  tree [-model name]                 List selectable components with their indices
  keys                               Show key bindings and pose presets
  pose [-model name] <preset>        Apply a preset and show the joints it moved
  dump [-model name] [index]         Dump component state after an update pass
  run [-model name] <key>...         Replay key presses and print the session state
  serve [-model name] [-listen addr] Serve a session without a window
  init [-model name] [-o path]       Write a default config file

Examples:
  posetool tree
  posetool pose walk
  posetool run Enter Up Up m 3 5
  posetool serve -listen :8080`)
}

// session is a headless model, scene and controller.
type session struct {
	scene *assembly.Scene
	ctrl  *interaction.Controller
}

func newSession(model string) (*session, error) {
	m, err := assembly.Build(model)
	if err != nil {
		return nil, err
	}
	s := &session{scene: assembly.NewScene(m, false)}
	cam := camera.NewOrbitCamera(camera.DefaultSettings(), 500, 500)
	s.ctrl = interaction.New(m, cam, interaction.DefaultSettings())
	s.scene.Root.Update(math.Identity())
	return s, nil
}

func modelFlags(name string, args []string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	model := fs.String("model", assembly.ModelSpider, "Model to load (spider, linkage)")
	fs.Parse(args)
	return fs, model
}

func cmdTree(w io.Writer, args []string) error {
	_, model := modelFlags("tree", args)
	s, err := newSession(*model)
	if err != nil {
		return err
	}

	index := 0
	scenegraph.Walk(s.ctrl.Model(), func(c scenegraph.Component, depth int) bool {
		if depth == 0 {
			fmt.Fprintf(w, "%s (%d components)\n", c.Base().Name(), len(s.ctrl.Components()))
			return true
		}
		n := c.Base()
		a := n.Angles()
		kind := "joint"
		if n.Geometry() != nil {
			kind = "shape"
		}
		fmt.Fprintf(w, "%3d %s%-*s %-5s u=%-6g v=%-6g w=%g\n",
			index, strings.Repeat("  ", depth-1), 24-2*(depth-1), shortName(n.Name()), kind, a[0], a[1], a[2])
		index++
		return true
	})
	return nil
}

func shortName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func cmdKeys(w io.Writer) error {
	fmt.Fprintln(w, "Selection:")
	fmt.Fprintln(w, "  Enter       select next component")
	fmt.Fprintln(w, "  Esc         clear selection")
	fmt.Fprintln(w, "  Left/Right  previous/next rotation axis")
	fmt.Fprintln(w, "  Up/Down     rotate selection (also mouse wheel)")
	fmt.Fprintln(w, "  m / M       enter/leave multi-select, then 0-9 adds a component")
	fmt.Fprintln(w, "  r / R       reset camera / reset everything")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Poses:")
	for _, p := range pose.All() {
		fmt.Fprintf(w, "  %c           %-13s %s\n", p.Key, p.Name, p.Description)
	}
	return nil
}

func cmdPose(w io.Writer, args []string) error {
	fs, model := modelFlags("pose", args)
	if fs.NArg() < 1 {
		return errors.New("usage: posetool pose [-model name] <preset>")
	}
	s, err := newSession(*model)
	if err != nil {
		return err
	}

	before := make([][joint.AxisCount]float32, len(s.ctrl.Components()))
	for i, c := range s.ctrl.Components() {
		before[i] = c.Base().Angles()
	}
	if err := s.ctrl.Handle(interaction.Command{Op: interaction.OpPose, Pose: fs.Arg(0)}); err != nil {
		return err
	}
	s.scene.Root.Update(math.Identity())

	moved := 0
	for i, c := range s.ctrl.Components() {
		after := c.Base().Angles()
		if after == before[i] {
			continue
		}
		moved++
		fmt.Fprintf(w, "%3d %-24s %v -> %v\n", i, c.Base().Name(), before[i], after)
	}
	fmt.Fprintf(w, "%d joints moved, model at %v\n", moved, s.ctrl.Model().Base().WorldPosition())
	return nil
}

func cmdDump(w io.Writer, args []string) error {
	fs, model := modelFlags("dump", args)
	s, err := newSession(*model)
	if err != nil {
		return err
	}
	nodes := s.ctrl.Nodes()
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
	if fs.NArg() == 0 {
		cfg.Fdump(w, nodes)
		return nil
	}
	i, err := strconv.Atoi(fs.Arg(0))
	if err != nil || i < 0 || i >= len(nodes) {
		return fmt.Errorf("index %q out of range [0, %d)", fs.Arg(0), len(nodes))
	}
	cfg.Fdump(w, nodes[i])
	return nil
}

func cmdRun(w io.Writer, args []string) error {
	fs, model := modelFlags("run", args)
	s, err := newSession(*model)
	if err != nil {
		return err
	}
	for _, name := range fs.Args() {
		k, err := interaction.ParseKey(name)
		if err != nil {
			return err
		}
		if err := s.ctrl.HandleKey(k); err != nil {
			return fmt.Errorf("key %s: %w", name, err)
		}
	}
	s.scene.Root.Update(math.Identity())

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		State  interaction.Snapshot   `json:"state"`
		Active []interaction.NodeInfo `json:"active"`
	}{s.ctrl.Snapshot(), activeNodes(s.ctrl)})
}

func activeNodes(c *interaction.Controller) []interaction.NodeInfo {
	out := []interaction.NodeInfo{}
	for _, n := range c.Nodes() {
		if n.Selected {
			out = append(out, n)
		}
	}
	return out
}

func cmdServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	model := fs.String("model", assembly.ModelSpider, "Model to load (spider, linkage)")
	listen := fs.String("listen", ":8080", "Listen address")
	level := fs.String("log", "info", "Log level")
	fs.Parse(args)

	if err := logger.Init(*level, ""); err != nil {
		return err
	}
	defer logger.Sync()

	s, err := newSession(*model)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess := remote.NewSession(s.ctrl, s.scene.Root)
	go sess.Run(ctx)

	srv := remote.NewServer(sess, remote.DefaultConfig())
	if err := srv.ListenAndServe(ctx, *listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func cmdInit(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	out := fs.String("o", "", "Output path (default: the user config directory)")
	model := fs.String("model", "", "Model the viewer opens")
	fs.Parse(args)

	cfg := config.Default()
	if *model != "" {
		cfg.Model.Name = *model
	}

	path := *out
	var err error
	if path == "" {
		path = filepath.Join(config.ConfigDir(), config.FileName)
		err = cfg.Save()
	} else {
		err = cfg.SaveTo(path)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "wrote %s\n", path)
	return nil
}
