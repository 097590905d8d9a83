package cloudinit

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"
)

// Header is the first line cloud-init requires on user-data.
const Header = "#cloud-config\n"

// RedactedToken replaces the registry token in [RenderRedacted].
const RedactedToken = "<redacted>"

const (
	tokenFile = "/root/.fxstack/registry-token"
	envFile   = "/etc/fxstack/app.env"
)

// DefaultPorts are published from the container to the host.
var DefaultPorts = []int{80, 443}

// Vars are the values templated into the boot configuration.
type Vars struct {
	ImagePath     string
	ImageTag      string
	RegistryUser  string
	RegistryToken string
}

// Validate rejects empty values and values spanning several lines.
func (v Vars) Validate() error {
	var errs []error
	for _, f := range []struct {
		name, value string
	}{
		{"image path", v.ImagePath},
		{"image tag", v.ImageTag},
		{"registry user", v.RegistryUser},
		{"registry token", v.RegistryToken},
	} {
		switch {
		case strings.TrimSpace(f.value) == "":
			errs = append(errs, fmt.Errorf("%s is required", f.name))
		case strings.ContainsAny(f.value, "\n\r"):
			errs = append(errs, fmt.Errorf("%s must be a single line", f.name))
		}
	}
	return errors.Join(errs...)
}

// Options control how the container is run.
type Options struct {
	Registry      string
	ContainerName string
	Env           map[string]string
	Ports         []int
}

type document struct {
	PackageUpdate bool        `yaml:"package_update"`
	Packages      []string    `yaml:"packages"`
	WriteFiles    []writeFile `yaml:"write_files,omitempty"`
	RunCmd        []string    `yaml:"runcmd"`
}

type writeFile struct {
	Path        string `yaml:"path"`
	Permissions string `yaml:"permissions"`
	Owner       string `yaml:"owner,omitempty"`
	Content     string `yaml:"content"`
}

// ImageRef returns the full image reference registry/path:tag.
func ImageRef(registry, path, tag string) string {
	if registry == "" {
		return path + ":" + tag
	}
	return fmt.Sprintf("%s/%s:%s", strings.TrimSuffix(registry, "/"), path, tag)
}

// Render produces the user-data document for vars.
func Render(vars Vars, opts Options) (string, error) {
	if err := vars.Validate(); err != nil {
		return "", fmt.Errorf("invalid cloud-init variables: %w", err)
	}
	if opts.Registry == "" {
		return "", errors.New("registry is required")
	}
	if opts.ContainerName == "" {
		opts.ContainerName = "app"
	}
	if len(opts.Ports) == 0 {
		opts.Ports = DefaultPorts
	}

	doc := build(vars, opts)
	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cloud-init document: %w", err)
	}
	return Header + string(out), nil
}

// RenderRedacted renders like [Render] with the registry token masked.
func RenderRedacted(vars Vars, opts Options) (string, error) {
	vars.RegistryToken = RedactedToken
	return Render(vars, opts)
}

func build(vars Vars, opts Options) document {
	image := ImageRef(opts.Registry, vars.ImagePath, vars.ImageTag)

	doc := document{
		PackageUpdate: true,
		Packages:      []string{"docker.io"},
		WriteFiles: []writeFile{{
			Path:        tokenFile,
			Permissions: "0600",
			Owner:       "root:root",
			Content:     vars.RegistryToken + "\n",
		}},
	}

	run := []string{"docker", "run", "-d",
		"--name", opts.ContainerName,
		"--restart", "unless-stopped",
	}
	for _, p := range opts.Ports {
		run = append(run, "-p", fmt.Sprintf("%d:%d", p, p))
	}
	if len(opts.Env) > 0 {
		doc.WriteFiles = append(doc.WriteFiles, writeFile{
			Path:        envFile,
			Permissions: "0600",
			Owner:       "root:root",
			Content:     envFileContent(opts.Env),
		})
		run = append(run, "--env-file", envFile)
	}
	run = append(run, image)

	doc.RunCmd = []string{
		shellquote.Join("systemctl", "enable", "--now", "docker"),
		shellquote.Join("docker", "login", opts.Registry, "-u", vars.RegistryUser, "--password-stdin") +
			" < " + shellquote.Join(tokenFile),
		shellquote.Join("rm", "-f", tokenFile),
		shellquote.Join("docker", "pull", image),
		shellquote.Join("docker", "rm", "-f", opts.ContainerName) + " || true",
		shellquote.Join(run...),
	}
	return doc
}

// envFileContent writes KEY=VALUE lines in sorted key order, the format
// docker run --env-file reads verbatim.
func envFileContent(env map[string]string) string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, env[k])
	}
	return b.String()
}
