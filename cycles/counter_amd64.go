package cycles

const available = true

// readCounter executes LFENCE; RDTSC and returns EDX:EAX.
func readCounter() uint64
