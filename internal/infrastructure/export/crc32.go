package export

// CRC-32 IEEE 802.3 (polinomio reflejado 0xEDB88320), el checksum que exige
// la especificación ZIP. Implementación table-driven propia para que el
// contenedor XLSX no dependa de ninguna librería de archivo; los tests la
// contrastan bit a bit contra hash/crc32 de la stdlib.

const crc32Poly = 0xEDB88320

var crc32Table = makeCRC32Table()

func makeCRC32Table() [256]uint32 {
	var table [256]uint32
	for i := range table {
		crc := uint32(i)
		for bit := 0; bit < 8; bit++ {
			if crc&1 == 1 {
				crc = crc32Poly ^ (crc >> 1)
			} else {
				crc >>= 1
			}
		}
		table[i] = crc
	}
	return table
}

// crc32Sum registro inicial 0xFFFFFFFF, un byte por iteración, complemento
// final.
func crc32Sum(data []byte) uint32 {
	crc := uint32(0xFFFFFFFF)
	for _, b := range data {
		crc = crc32Table[(crc^uint32(b))&0xFF] ^ (crc >> 8)
	}
	return crc ^ 0xFFFFFFFF
}
