package domain

// Zero overwrites a byte slice with zeros to clear sensitive data from memory.
//
// In a garbage-collected runtime this is a mitigation, not a guarantee: the
// runtime may have copied the data before the overwrite. See SecureMemoryCleanup
// in the service package for the record-level counterpart.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
