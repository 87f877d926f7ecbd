package domain

import "robmcf/internal/matrix"

// Infinity is the sentinel distance/predecessor/successor value used
// throughout the core: re-exported here so callers assembling a Network
// don't need to import internal/matrix directly.
const Infinity = matrix.Infinity

// DefaultProxyCapacity is the capacity assigned to a fixed arc's proxy-facing
// outgoing arc during auxiliary network construction: unbounded for routing
// purposes, since real cross-scenario consistency is enforced dynamically by
// the scheduler's slack accounting rather than by a hard capacity.
const DefaultProxyCapacity = matrix.Infinity
