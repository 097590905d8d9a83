package destroy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/fxstack/internal/config"
	"github.com/imamik/fxstack/internal/platform/hcloud"
	"github.com/imamik/fxstack/internal/provisioning"
	"github.com/imamik/fxstack/internal/util/labels"
)

func createTestContext(t *testing.T, mock *hcloud.MockClient) (*provisioning.Context, *provisioning.RecordingObserver) {
	t.Helper()
	ctx := provisioning.NewContext(context.Background(), &config.Config{Name: "fx"}, mock, config.Secrets{})
	observer := provisioning.NewRecordingObserver()
	ctx.Observer = observer
	return ctx, observer
}

func TestProvisionerName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "destroy", NewProvisioner().Name())
}

func TestProvision(t *testing.T) {
	t.Parallel()

	var order []string
	record := func(kind string) func(context.Context, string) error {
		return func(_ context.Context, name string) error {
			order = append(order, kind+":"+name)
			return nil
		}
	}

	mock := &hcloud.MockClient{
		DeleteServerFunc:   record("server"),
		DeleteFirewallFunc: record("firewall"),
		DeleteSSHKeyFunc:   record("ssh-key"),
		CleanupByLabelFunc: func(_ context.Context, selector map[string]string) error {
			order = append(order, "cleanup")
			assert.Equal(t, map[string]string{labels.KeyStack: "fx"}, selector)
			return nil
		},
	}
	ctx, observer := createTestContext(t, mock)

	require.NoError(t, NewProvisioner().Provision(ctx))
	assert.Equal(t, []string{"server:fx", "firewall:fx", "ssh-key:fx", "cleanup"}, order)
	assert.Len(t, observer.EventsOfType(provisioning.EventResourceDeleted), 3)
}

func TestProvision_MissingResourcesAreFine(t *testing.T) {
	t.Parallel()
	// The real client reports nothing-to-delete as success; the mock default
	// mirrors that.
	ctx, _ := createTestContext(t, &hcloud.MockClient{})
	require.NoError(t, NewProvisioner().Provision(ctx))

	// Running it twice is idempotent.
	require.NoError(t, NewProvisioner().Provision(ctx))
}

func TestProvision_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		setupMock     func(*hcloud.MockClient)
		errorContains string
	}{
		{
			name: "server delete fails",
			setupMock: func(m *hcloud.MockClient) {
				m.DeleteServerFunc = func(context.Context, string) error { return errors.New("locked") }
				m.DeleteFirewallFunc = func(context.Context, string) error {
					t.Error("firewall must not be deleted after a server failure")
					return nil
				}
			},
			errorContains: "failed to delete server fx: locked",
		},
		{
			name: "firewall delete fails",
			setupMock: func(m *hcloud.MockClient) {
				m.DeleteFirewallFunc = func(context.Context, string) error { return errors.New("resource_in_use") }
			},
			errorContains: "failed to delete firewall fx: resource_in_use",
		},
		{
			name: "cleanup fails",
			setupMock: func(m *hcloud.MockClient) {
				m.CleanupByLabelFunc = func(context.Context, map[string]string) error { return errors.New("api down") }
			},
			errorContains: "failed to cleanup stack resources: api down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mock := &hcloud.MockClient{}
			tt.setupMock(mock)
			ctx, _ := createTestContext(t, mock)

			err := NewProvisioner().Provision(ctx)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}
