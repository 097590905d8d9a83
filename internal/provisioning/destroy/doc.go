// Package destroy handles stack teardown and resource cleanup.
//
// Resources are deleted by name in reverse dependency order and then swept
// by label, so a partially applied stack is removed as well.
package destroy
