// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package archive copies result snapshots to S3 or an S3-compatible store.

Objects are written to

	snapshots/<yyyy>/<mm>/<dd>/<snapshot id>.json

The key-value store stays the source of truth; an upload failure only
leaves the snapshot's archived flag false.
*/
package archive
