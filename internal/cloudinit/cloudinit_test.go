package cloudinit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testVars() Vars {
	return Vars{
		ImagePath:     "acme/rates",
		ImageTag:      "v1.4.0",
		RegistryUser:  "deploy-bot",
		RegistryToken: "ghp_s3cr3t",
	}
}

func parse(t *testing.T, out string) document {
	t.Helper()
	var doc document
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	return doc
}

func TestRender_ContainsAllVariables(t *testing.T) {
	t.Parallel()
	vars := testVars()

	out, err := Render(vars, Options{Registry: "ghcr.io"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, Header))
	for _, v := range []string{vars.ImagePath, vars.ImageTag, vars.RegistryUser, vars.RegistryToken} {
		assert.Contains(t, out, v)
	}
}

func TestRender_Document(t *testing.T) {
	t.Parallel()

	out, err := Render(testVars(), Options{
		Registry:      "ghcr.io",
		ContainerName: "rates",
		Env:           map[string]string{"B": "2", "A": "1"},
	})
	require.NoError(t, err)
	doc := parse(t, out)

	assert.True(t, doc.PackageUpdate)
	assert.Equal(t, []string{"docker.io"}, doc.Packages)

	require.Len(t, doc.WriteFiles, 2)
	assert.Equal(t, tokenFile, doc.WriteFiles[0].Path)
	assert.Equal(t, "0600", doc.WriteFiles[0].Permissions)
	assert.Equal(t, "ghp_s3cr3t\n", doc.WriteFiles[0].Content)
	assert.Equal(t, envFile, doc.WriteFiles[1].Path)
	assert.Equal(t, "A=1\nB=2\n", doc.WriteFiles[1].Content)

	require.Len(t, doc.RunCmd, 6)
	assert.Equal(t, "systemctl enable --now docker", doc.RunCmd[0])
	assert.Equal(t, "docker login ghcr.io -u deploy-bot --password-stdin < /root/.fxstack/registry-token", doc.RunCmd[1])
	assert.Equal(t, "rm -f /root/.fxstack/registry-token", doc.RunCmd[2])
	assert.Equal(t, "docker pull ghcr.io/acme/rates:v1.4.0", doc.RunCmd[3])
	assert.Equal(t,
		"docker run -d --name rates --restart unless-stopped -p 80:80 -p 443:443 --env-file /etc/fxstack/app.env ghcr.io/acme/rates:v1.4.0",
		doc.RunCmd[5])
}

func TestRender_TokenNeverOnCommandLine(t *testing.T) {
	t.Parallel()

	out, err := Render(testVars(), Options{Registry: "ghcr.io"})
	require.NoError(t, err)

	for _, cmd := range parse(t, out).RunCmd {
		assert.NotContains(t, cmd, "ghp_s3cr3t")
	}
}

func TestRender_QuotesShellWords(t *testing.T) {
	t.Parallel()
	vars := testVars()
	vars.RegistryUser = "user name"

	out, err := Render(vars, Options{Registry: "ghcr.io"})
	require.NoError(t, err)

	assert.Contains(t, parse(t, out).RunCmd[1], `-u 'user name'`)
}

func TestRender_Defaults(t *testing.T) {
	t.Parallel()

	out, err := Render(testVars(), Options{Registry: "ghcr.io"})
	require.NoError(t, err)
	doc := parse(t, out)

	assert.Len(t, doc.WriteFiles, 1, "no env file without env")
	assert.Contains(t, doc.RunCmd[5], "--name app")
	assert.NotContains(t, doc.RunCmd[5], "--env-file")
}

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	_, err := Render(Vars{}, Options{Registry: "ghcr.io"})
	require.Error(t, err)
	for _, field := range []string{"image path", "image tag", "registry user", "registry token"} {
		assert.Contains(t, err.Error(), field+" is required")
	}

	vars := testVars()
	vars.RegistryToken = "abc\nruncmd: [reboot]"
	_, err = Render(vars, Options{Registry: "ghcr.io"})
	assert.ErrorContains(t, err, "registry token must be a single line")

	_, err = Render(testVars(), Options{})
	assert.ErrorContains(t, err, "registry is required")
}

func TestRenderRedacted(t *testing.T) {
	t.Parallel()

	out, err := RenderRedacted(testVars(), Options{Registry: "ghcr.io"})
	require.NoError(t, err)

	assert.NotContains(t, out, "ghp_s3cr3t")
	assert.Contains(t, out, RedactedToken)
}

func TestImageRef(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ghcr.io/acme/rates:v1", ImageRef("ghcr.io", "acme/rates", "v1"))
	assert.Equal(t, "ghcr.io/acme/rates:v1", ImageRef("ghcr.io/", "acme/rates", "v1"))
	assert.Equal(t, "acme/rates:v1", ImageRef("", "acme/rates", "v1"))
}
