package ascerr

// Shift register used by the LFSR strategy. The register has w bits;
// its output is the low w-1 bits. On each clock, the register becomes:
//
//	(q[0] << (w-1)) | ((q ^ (q >> 1)) mod 2^(w-1))
//
// i.e. the low bit is rotated to the top and the remaining bits receive
// the XOR of adjacent bits. Starting from 1, the sequence is periodic;
// the period is maximal (2^w - 1) only for some widths (w = 3 and w = 7
// but not w = 5, where it is 21).

// Register output for width w.
func lfsr_out(q uint64, w uint) uint64 {
	return q & mask_u64(w-1)
}

// Next register value for width w.
func lfsr_next(q uint64, w uint) uint64 {
	return ((q & 1) << (w - 1)) | ((q ^ (q >> 1)) & mask_u64(w-1))
}
