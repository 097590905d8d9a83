package outputs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/fxstack/internal/config"
	hcloud_internal "github.com/imamik/fxstack/internal/platform/hcloud"
	"github.com/imamik/fxstack/internal/platform/s3"
)

func testConfig() *config.Config {
	cfg := &config.Config{Name: "fx", Container: config.ContainerConfig{Image: "acme/fx"}}
	cfg.ApplyDefaults()
	return cfg
}

func TestFromServer(t *testing.T) {
	t.Parallel()
	server := hcloud_internal.NewMockServer(42, "fx", "203.0.113.10")

	o := FromServer(testConfig(), server)

	assert.Equal(t, Outputs{
		InstanceID: "42",
		PublicIPv4: "203.0.113.10",
		SSHCommand: "ssh root@203.0.113.10",
		HTTPURL:    "http://203.0.113.10",
	}, o)
	assert.NoError(t, o.Validate())
}

func TestFromServer_CustomKey(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.SSH.PrivateKeyPath = "keys/my key"
	cfg.SSH.User = "deploy"
	cfg.SetDir("/srv/fx")

	o := FromServer(cfg, hcloud_internal.NewMockServer(1, "fx", "203.0.113.10"))
	assert.Equal(t, "ssh -i '/srv/fx/keys/my key' deploy@203.0.113.10", o.SSHCommand)
}

func TestFromServer_Incomplete(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Outputs{}, FromServer(testConfig(), nil))

	o := FromServer(testConfig(), &hcloud.Server{ID: 3})
	assert.Equal(t, "3", o.InstanceID)
	assert.Empty(t, o.SSHCommand)

	err := o.Validate()
	require.Error(t, err)
	for _, name := range []string{"public_ipv4", "ssh_command", "http_url"} {
		assert.Contains(t, err.Error(), name+" is empty")
	}
	assert.NotContains(t, err.Error(), "instance_id")
}

func TestMapAndKeys(t *testing.T) {
	t.Parallel()
	o := Outputs{InstanceID: "1", PublicIPv4: "ip", SSHCommand: "ssh", HTTPURL: "url"}
	m := o.Map()

	require.Len(t, m, len(Keys))
	for _, k := range Keys {
		assert.NotEmpty(t, m[k], k)
	}

	data, err := json.Marshal(o)
	require.NoError(t, err)
	var decoded map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, m, decoded)
}

func TestFileLifecycle(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), DefaultFilename)
	o := Outputs{InstanceID: "42", PublicIPv4: "203.0.113.10", SSHCommand: "ssh root@203.0.113.10", HTTPURL: "http://203.0.113.10"}

	_, err := ReadFile(path)
	require.ErrorIs(t, err, ErrNoOutputs)

	require.NoError(t, WriteFile(path, o))
	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, o, got)

	require.NoError(t, RemoveFile(path))
	require.NoError(t, RemoveFile(path))
	assert.NoFileExists(t, path)
}

func TestReadFile_Corrupt(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	_, err := ReadFile(path)
	assert.ErrorContains(t, err, "failed to parse outputs file")
}

// memoryStore is an in-memory ObjectStore.
type memoryStore struct {
	buckets   map[string]bool
	objects   map[string][]byte
	ensureErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{buckets: map[string]bool{}, objects: map[string][]byte{}}
}

func (m *memoryStore) EnsureBucket(_ context.Context, bucket string) error {
	if m.ensureErr != nil {
		return m.ensureErr
	}
	m.buckets[bucket] = true
	return nil
}

func (m *memoryStore) PutJSON(_ context.Context, bucket, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.objects[bucket+"/"+key] = data
	return nil
}

func (m *memoryStore) GetJSON(_ context.Context, bucket, key string, v any) error {
	data, ok := m.objects[bucket+"/"+key]
	if !ok {
		return fmt.Errorf("%s/%s: %w", bucket, key, s3.ErrObjectNotFound)
	}
	return json.Unmarshal(data, v)
}

func (m *memoryStore) DeleteObject(_ context.Context, bucket, key string) error {
	delete(m.objects, bucket+"/"+key)
	return nil
}

func TestStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := newMemoryStore()
	store := NewStore(mem, "fx-state", "fx")
	o := Outputs{InstanceID: "42", PublicIPv4: "203.0.113.10", SSHCommand: "ssh root@203.0.113.10", HTTPURL: "http://203.0.113.10"}

	assert.Equal(t, "s3://fx-state/fx/outputs.json", store.Location())

	_, err := store.Fetch(ctx)
	require.ErrorIs(t, err, ErrNoOutputs)

	require.NoError(t, store.Publish(ctx, o))
	assert.True(t, mem.buckets["fx-state"])
	assert.Contains(t, mem.objects, "fx-state/fx/outputs.json")

	got, err := store.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, o, got)

	require.NoError(t, store.Remove(ctx))
	_, err = store.Fetch(ctx)
	assert.ErrorIs(t, err, ErrNoOutputs)
}

func TestStore_PublishBucketError(t *testing.T) {
	t.Parallel()
	mem := newMemoryStore()
	mem.ensureErr = errors.New("access denied")

	err := NewStore(mem, "b", "fx").Publish(context.Background(), Outputs{})
	assert.EqualError(t, err, "access denied")
}

func TestNewS3Store(t *testing.T) {
	t.Parallel()
	cfg := testConfig()

	_, err := NewS3Store(cfg, config.Secrets{})
	assert.EqualError(t, err, "state bucket is not configured")

	cfg.State = config.StateConfig{Endpoint: "https://fsn1.your-objectstorage.com", Region: "fsn1", Bucket: "fx-state"}
	_, err = NewS3Store(cfg, config.Secrets{})
	assert.ErrorContains(t, err, config.EnvS3AccessKey)

	store, err := NewS3Store(cfg, config.Secrets{S3AccessKey: "ak", S3SecretKey: "sk"})
	require.NoError(t, err)
	assert.Equal(t, "s3://fx-state/fx/outputs.json", store.Location())
}
