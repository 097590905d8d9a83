package handlers

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/kballard/go-shellquote"

	"github.com/imamik/fxstack/internal/platform/ssh"
)

// LogsOptions tune the logs command.
type LogsOptions struct {
	Tail   int
	Follow bool
}

// remoteStreamer runs a command on the instance and streams its output.
type remoteStreamer interface {
	Stream(ctx context.Context, command string, stdout, stderr io.Writer) error
}

var (
	// newSSHClient creates an SSH client for the instance.
	newSSHClient = func(cfg *ssh.Config) (remoteStreamer, error) {
		return ssh.NewClient(cfg)
	}

	// readFile reads the private key.
	readFile = os.ReadFile

	// stderr receives the remote command's error stream.
	stderr io.Writer = os.Stderr
)

// LogsCommand builds the docker logs invocation run on the instance.
func LogsCommand(container string, opts LogsOptions) string {
	args := []string{"docker", "logs"}
	if opts.Tail > 0 {
		args = append(args, "--tail", strconv.Itoa(opts.Tail))
	}
	if opts.Follow {
		args = append(args, "--follow")
	}
	args = append(args, container)
	return shellquote.Join(args...)
}

// Logs streams the container logs from the instance over SSH. The address
// comes from the stack outputs and the key from ssh.private_key_path.
func Logs(ctx context.Context, configPath string, opts LogsOptions) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	out, err := readOutputs(ctx, cfg, loadSecrets())
	if err != nil {
		return err
	}
	if out.PublicIPv4 == "" {
		return fmt.Errorf("stack %s has no public IPv4 address in its outputs", cfg.Name)
	}

	key, err := readFile(cfg.PrivateKeyPath())
	if err != nil {
		return fmt.Errorf("failed to read private key: %w", err)
	}

	client, err := newSSHClient(&ssh.Config{
		Host:       out.PublicIPv4,
		User:       cfg.SSH.User,
		PrivateKey: key,
	})
	if err != nil {
		return err
	}

	return client.Stream(ctx, LogsCommand(cfg.Container.Name, opts), stdout, stderr)
}
