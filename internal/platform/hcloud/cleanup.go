package hcloud

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/imamik/fxstack/internal/util/labels"
	"github.com/imamik/fxstack/internal/util/retry"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// CleanupError represents accumulated errors from cleanup operations.
type CleanupError struct {
	Errors []error
}

func (e *CleanupError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("cleanup encountered %d errors: %v", len(e.Errors), e.Errors)
}

func (e *CleanupError) Unwrap() error {
	if len(e.Errors) == 1 {
		return e.Errors[0]
	}
	return errors.Join(e.Errors...)
}

// Add records err unless it is nil.
func (e *CleanupError) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// HasErrors reports whether any error was recorded.
func (e *CleanupError) HasErrors() bool {
	return len(e.Errors) > 0
}

type resource interface {
	*hcloud.Server | *hcloud.Firewall | *hcloud.SSHKey
}

func resourceName[T resource](r T) (string, int64) {
	switch v := any(r).(type) {
	case *hcloud.Server:
		return v.Name, v.ID
	case *hcloud.Firewall:
		return v.Name, v.ID
	case *hcloud.SSHKey:
		return v.Name, v.ID
	}
	return "", 0
}

func deleteResourcesByLabel[T resource](
	ctx context.Context,
	resourceType string,
	listFn func(context.Context) ([]T, error),
	deleteFn func(context.Context, T) error,
) error {
	resources, err := listFn(ctx)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", resourceType, err)
	}

	var deleteErrs []error
	for _, r := range resources {
		name, id := resourceName(r)
		log.Printf("[Cleanup] Deleting %s: %s (ID: %d)", resourceType, name, id)
		if err := deleteFn(ctx, r); err != nil {
			log.Printf("[Cleanup] Warning: Failed to delete %s %s: %v", resourceType, name, err)
			deleteErrs = append(deleteErrs, fmt.Errorf("%s %q: %w", resourceType, name, err))
		}
	}
	return errors.Join(deleteErrs...)
}

// CleanupByLabel deletes servers, then firewalls, then SSH keys matching
// the label selector. It attempts every resource type even if some
// deletions fail and returns a CleanupError with everything that failed.
func (c *RealClient) CleanupByLabel(ctx context.Context, labelSelector map[string]string) error {
	selector := labels.Selector(labelSelector)
	if selector == "" {
		return errors.New("refusing to clean up without a label selector")
	}
	log.Printf("[Cleanup] Starting cleanup for resources with labels: %s", selector)

	cleanupErrs := &CleanupError{}
	listOpts := hcloud.ListOpts{LabelSelector: selector}

	cleanupErrs.Add(deleteResourcesByLabel(ctx, "server",
		func(ctx context.Context) ([]*hcloud.Server, error) {
			return c.client.Server.AllWithOpts(ctx, hcloud.ServerListOpts{ListOpts: listOpts})
		},
		func(ctx context.Context, s *hcloud.Server) error {
			res, _, err := c.client.Server.DeleteWithResult(ctx, s)
			if err != nil {
				return err
			}
			return c.client.Action.WaitFor(ctx, res.Action)
		},
	))

	cleanupErrs.Add(deleteResourcesByLabel(ctx, "firewall",
		func(ctx context.Context) ([]*hcloud.Firewall, error) {
			return c.client.Firewall.AllWithOpts(ctx, hcloud.FirewallListOpts{ListOpts: listOpts})
		},
		func(ctx context.Context, fw *hcloud.Firewall) error {
			return c.retryWhileLocked(ctx, func() error {
				_, err := c.client.Firewall.Delete(ctx, fw)
				return err
			})
		},
	))

	cleanupErrs.Add(deleteResourcesByLabel(ctx, "ssh key",
		func(ctx context.Context) ([]*hcloud.SSHKey, error) {
			return c.client.SSHKey.AllWithOpts(ctx, hcloud.SSHKeyListOpts{ListOpts: listOpts})
		},
		func(ctx context.Context, key *hcloud.SSHKey) error {
			_, err := c.client.SSHKey.Delete(ctx, key)
			return err
		},
	))

	if cleanupErrs.HasErrors() {
		return cleanupErrs
	}
	log.Printf("[Cleanup] Cleanup complete for %s", selector)
	return nil
}

func (c *RealClient) retryWhileLocked(ctx context.Context, fn func() error) error {
	return retry.WithExponentialBackoff(ctx, func() error {
		err := fn()
		if err == nil || IsNotFound(err) {
			return nil
		}
		if isResourceLocked(err) {
			return err
		}
		return retry.Fatal(err)
	},
		retry.WithMaxRetries(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay))
}
