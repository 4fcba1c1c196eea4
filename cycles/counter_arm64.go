package cycles

const available = true

// readCounter returns CNTVCT_EL0 after an instruction barrier.
func readCounter() uint64
