// Package s3 provides a small client for S3-compatible object storage
// such as Hetzner Object Storage.
//
// It stores the stack outputs document: bucket creation, object upload,
// download and deletion. Missing objects surface as [ErrObjectNotFound].
package s3
