package protocol

// PageChecksum computes the additive checksum of a page: the sum of all
// bytes modulo 256. Devices running in checksum acknowledgement mode reply
// to a write with this byte.
func PageChecksum(page []byte) byte {
	var sum byte
	for _, b := range page {
		sum += b
	}
	return sum
}
