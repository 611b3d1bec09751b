// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container detects a local container runtime (docker or podman)
// and runs single-shot containers that filter stdin to stdout.
package container

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// Runtime provides container operations: checking availability, verifying
// images, and running containers.
type Runtime interface {
	// Name returns the runtime name ("docker" or "podman").
	Name() string

	// Available reports whether the runtime binary exists on PATH and
	// responds to an info command.
	Available() bool

	// ImageExists checks whether the named image exists locally.
	// Returns nil when the image is found, or an error describing the failure.
	ImageExists(image string) error

	// Run executes a container with the given image and command arguments,
	// piping stdin and stdout. The container is removed when it exits.
	Run(image string, args []string, stdin io.Reader, stdout io.Writer) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunPiped(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunPiped(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// runtime implements Runtime for a specific container binary. Both Docker
// and Podman share the same logic; they differ only in binary name and the
// subcommand used to check image existence.
type runtime struct {
	bin           string
	imageCheckCmd []string // e.g. ["image", "inspect"] for docker
	exec          executor
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) Available() bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(r.bin, "info") == nil
}

func (r *runtime) ImageExists(image string) error {
	args := make([]string, 0, len(r.imageCheckCmd)+1)
	args = append(args, r.imageCheckCmd...)
	args = append(args, image)

	if err := r.exec.RunSilent(r.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

func (r *runtime) Run(image string, args []string, stdin io.Reader, stdout io.Writer) error {
	cmdArgs := make([]string, 0, len(args)+6)
	cmdArgs = append(cmdArgs, "run", "--rm", "-i", "--network", "none", image)
	cmdArgs = append(cmdArgs, args...)

	var stderr bytes.Buffer
	if err := r.exec.RunPiped(r.bin, cmdArgs, stdin, stdout, &stderr); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("running %s container %s: %w: %s", r.bin, image, err, msg)
		}
		return fmt.Errorf("running %s container %s: %w", r.bin, image, err)
	}
	return nil
}

func newDockerRuntime(exec executor) *runtime {
	return &runtime{
		bin:           binDocker,
		imageCheckCmd: []string{"image", "inspect"},
		exec:          exec,
	}
}

func newPodmanRuntime(exec executor) *runtime {
	return &runtime{
		bin:           binPodman,
		imageCheckCmd: []string{"image", "exists"},
		exec:          exec,
	}
}

var defaultExec = &osExecutor{}

// DetectRuntime returns the runtime named by preferred ("docker" or
// "podman"), or, when preferred is empty, tries docker first and falls
// back to podman. It returns an error if no usable runtime is found.
func DetectRuntime(preferred string) (Runtime, error) {
	return detectRuntime(defaultExec, preferred)
}

func detectRuntime(exec executor, preferred string) (Runtime, error) {
	var candidates []*runtime
	switch preferred {
	case "":
		candidates = []*runtime{newDockerRuntime(exec), newPodmanRuntime(exec)}
	case binDocker:
		candidates = []*runtime{newDockerRuntime(exec)}
	case binPodman:
		candidates = []*runtime{newPodmanRuntime(exec)}
	default:
		return nil, fmt.Errorf("unknown container runtime %q: want %s or %s", preferred, binDocker, binPodman)
	}

	for _, rt := range candidates {
		if rt.Available() {
			return rt, nil
		}
	}

	if preferred != "" {
		return nil, fmt.Errorf("container runtime %s not found or not operational", preferred)
	}
	return nil, fmt.Errorf(
		"no container runtime available: neither %s nor %s found or operational",
		binDocker, binPodman,
	)
}
