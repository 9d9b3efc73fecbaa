// Package labels loads the flat-text MAC label inventory (labels.txt).
//
// Each well-formed line maps a hardware address to a human label and an
// optional hostname:
//
//	40:0D:10:88:92:90=Router=router.local
//	00:12:41:89:3F:4C=NAS
//
// Parsing is deliberately tolerant: the file is hand-edited, and one typo
// must not abort a scan. Malformed lines are skipped with a warning, MAC
// matching is case-insensitive, a duplicated MAC keeps only its last line,
// and a missing file is simply an empty store.
package labels
