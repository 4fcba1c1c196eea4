package utils

import (
	"bytes"
	"testing"
)

func FuzzDRBG_ChunkedMatchesManual(f *testing.F) {
	f.Add([]byte{0, 1, 2, 3}, 64, 32)
	f.Add([]byte{0xff}, 17, 5)
	f.Fuzz(func(t *testing.T, seed []byte, n, chunk int) {
		if n < 0 || n > 4096 || chunk <= 0 || chunk > 4096 {
			t.Skip()
		}
		var e [DRBGSeedSize]byte
		copy(e[:], seed)

		d1, err := NewDRBG(e, nil, 256)
		if err != nil {
			t.Fatal(err)
		}
		d2, _ := NewDRBG(e, nil, 256)

		got := make([]byte, n)
		if err := ReadChunked(d1, got, chunk); err != nil {
			t.Fatal(err)
		}
		want := make([]byte, n)
		for off := 0; off < n; off += chunk {
			end := off + chunk
			if end > n {
				end = n
			}
			d2.Read(want[off:end])
		}
		if !bytes.Equal(got, want) {
			t.Fatal("chunked stream mismatch")
		}
	})
}
