// Package engine implements the stock mutation and aggregation core:
// single-field mutation with per-field coercion, stock tier
// classification, variation-to-parent rollups, bulk operations with
// per-item failure isolation, and the usage gate that limits unlicensed
// installations to a fixed number of changes.
//
// The engine owns no persistence of its own; it talks to the catalog
// exclusively through the ProductStore interface and to the license
// server through LicenseValidator.
package engine
