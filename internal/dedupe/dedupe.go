// Package dedupe holds the shared singleflight groups. Round resolution can
// be triggered by a pacing timer and by a client request at the same time;
// keying the group by session code lets only one of them run.
package dedupe

import "golang.org/x/sync/singleflight"

// ResolveGroup deduplicates round resolution keyed by session code.
var ResolveGroup singleflight.Group
