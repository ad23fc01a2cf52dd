package bulk

// DefaultBulkSize is the bulk size used by drivers when the caller does not
// specify one. The engine itself has no default; New requires an explicit,
// positive size.
const DefaultBulkSize = 3
