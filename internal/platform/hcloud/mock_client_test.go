package hcloud

import (
	"context"
	"errors"
	"testing"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClient_Defaults(t *testing.T) {
	t.Parallel()
	m := &MockClient{}
	ctx := context.Background()

	server, err := m.CreateServer(ctx, ServerCreateOpts{Name: "rates"})
	require.NoError(t, err)
	assert.Equal(t, "rates", server.Name)
	assert.Equal(t, MockServerIPv4, ServerIPv4(server))

	existing, err := m.GetServer(ctx, "rates")
	require.NoError(t, err)
	assert.Nil(t, existing)

	key, err := m.EnsureSSHKey(ctx, "rates", "ssh-ed25519 AAAA", nil)
	require.NoError(t, err)
	assert.Equal(t, "rates", key.Name)

	fw, err := m.EnsureFirewall(ctx, "rates", []hcloud.FirewallRule{{}}, nil, "")
	require.NoError(t, err)
	assert.Len(t, fw.Rules, 1)

	ip, err := m.GetPublicIP(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, ip)

	assert.NoError(t, m.DeleteServer(ctx, "rates"))
	assert.NoError(t, m.DeleteFirewall(ctx, "rates"))
	assert.NoError(t, m.DeleteSSHKey(ctx, "rates"))
	assert.NoError(t, m.CleanupByLabel(ctx, nil))
}

func TestMockClient_Overrides(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	m := &MockClient{
		CreateServerFunc: func(_ context.Context, opts ServerCreateOpts) (*hcloud.Server, error) {
			assert.Equal(t, "rates", opts.Name)
			return nil, boom
		},
		DeleteFirewallFunc: func(_ context.Context, _ string) error { return boom },
	}

	_, err := m.CreateServer(context.Background(), ServerCreateOpts{Name: "rates"})
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, m.DeleteFirewall(context.Background(), "rates"), boom)
}

func TestServerIPv4(t *testing.T) {
	t.Parallel()
	assert.Empty(t, ServerIPv4(nil))
	assert.Empty(t, ServerIPv4(&hcloud.Server{}))
	assert.Equal(t, "192.0.2.1", ServerIPv4(NewMockServer(1, "a", "192.0.2.1")))
}
