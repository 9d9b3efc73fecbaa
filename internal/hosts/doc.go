// Package hosts reconciles discovered hostname mappings into a system hosts
// file.
//
// The hosts file is shared territory: other tools and hand edits own most of
// its lines. The reconciler therefore only claims lines that collide with
// the current batch, by IP or by hostname, and preserves everything else
// byte-for-byte. Managed lines are rewritten in a fixed format at the end of
// the file, sorted by IP, which makes the operation idempotent.
package hosts
