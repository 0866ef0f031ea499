package export

import (
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ──────────────────────────────────────────────────────────────────────────────
// El CRC-32 propio debe coincidir bit a bit con el IEEE 802.3 de la stdlib:
// es el checksum que los extractores ZIP verifican en cada entrada.
// ──────────────────────────────────────────────────────────────────────────────

// Vector canónico del estándar: CRC-32("123456789") = 0xCBF43926.
func TestCRC32_VectorCanonico(t *testing.T) {
	assert.Equal(t, uint32(0xCBF43926), crc32Sum([]byte("123456789")),
		"el CRC del vector estándar debe ser 0xCBF43926")
}

func TestCRC32_CoincideConStdlib(t *testing.T) {
	cases := [][]byte{
		nil,
		{},
		{0x00},
		{0xFF},
		[]byte("a"),
		[]byte("hola mundo"),
		[]byte(partContentTypes),
		make([]byte, 4096), // bloque de ceros
	}
	for _, data := range cases {
		assert.Equal(t, crc32.ChecksumIEEE(data), crc32Sum(data),
			"el CRC propio debe coincidir con hash/crc32 para %q", data)
	}
}

func TestCRC32_SensibleAlInput(t *testing.T) {
	a := crc32Sum([]byte("reporte-2026-01"))
	b := crc32Sum([]byte("reporte-2026-02"))
	assert.NotEqual(t, a, b, "inputs distintos deben producir CRCs distintos")
}
