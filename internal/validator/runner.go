package validator

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Runner executes the external schematron rule service against a document
// and returns its SVRL report. It is injected so tests can substitute a stub
// and so the container invocation can be swapped for an in-process engine.
type Runner interface {
	Run(ctx context.Context, xml []byte, belgian bool) ([]byte, error)
}

// DefaultSchematronImage is the PEPPOL schematron container image
const DefaultSchematronImage = "ghcr.io/mooroe/peppol_schematron:latest"

// DockerRunner runs the schematron container. The document is piped on
// stdin and never passed as a process argument, so document content cannot
// be interpreted as part of the command line.
type DockerRunner struct {
	Binary string
	Image  string
}

// NewDockerRunner creates a runner for the given image, falling back to the
// default PEPPOL schematron image
func NewDockerRunner(image string) *DockerRunner {
	if image == "" {
		image = DefaultSchematronImage
	}
	return &DockerRunner{Binary: "docker", Image: image}
}

// Run invokes the container and captures the SVRL report from stdout.
// Cancellation and timeouts are honored through ctx.
func (r *DockerRunner) Run(ctx context.Context, xml []byte, belgian bool) ([]byte, error) {
	args := []string{"run", "--rm", "-i"}
	if belgian {
		args = append(args, "-e", "UBL_BE=true")
	}
	args = append(args, r.Image)

	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.Stdin = bytes.NewReader(xml)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	log.Debug().
		Str("image", r.Image).
		Bool("belgian", belgian).
		Dur("elapsed", time.Since(start)).
		Err(err).
		Msg("schematron container finished")

	if err != nil && stdout.Len() == 0 {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = fmt.Sprintf("container %s failed", r.Image)
		}
		return nil, &SchematronExecutionError{Message: msg, Cause: err}
	}

	// a non-zero exit with a report on stdout still counts: some rule sets
	// signal violations through the exit code
	return stdout.Bytes(), nil
}
