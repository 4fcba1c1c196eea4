//go:build !amd64 && !arm64

package cycles

const available = false

func readCounter() uint64 {
	panic(ErrUnsupported)
}
