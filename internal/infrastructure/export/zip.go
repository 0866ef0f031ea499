package export

import "bytes"

// Escritor ZIP mínimo para el paquete XLSX: entradas almacenadas sin
// comprimir (método 0), cabecera local de 30 bytes, directorio central de
// 46 bytes por entrada y EOCD de 22 bytes. El cursor de bytes del buffer es
// la única fuente de verdad para todos los offsets: cada offset se captura
// inmediatamente antes de emitir el rango que referencia.

// Firmas y campos fijos del formato (APPNOTE.TXT).
const (
	zipLocalHeaderSig   = 0x04034B50
	zipCentralDirSig    = 0x02014B50
	zipEndOfCentralSig  = 0x06054B50
	zipVersionNeeded    = 20 // 2.0: suficiente para entradas stored
	zipMethodStored     = 0
	zipLocalHeaderLen   = 30
	zipCentralHeaderLen = 46
)

// zipEntry una parte lógica del paquete, inmutable tras calcular su CRC.
type zipEntry struct {
	name   string // ruta UTF-8 estilo path, ej. "xl/worksheets/sheet1.xml"
	data   []byte
	crc    uint32
	offset uint32 // offset de su Local File Header desde el inicio del archivo
}

// zipWriter arma el archivo en un solo pase: cabeceras locales + payload al
// agregar cada entrada, directorio central y EOCD al cerrar.
type zipWriter struct {
	buf     bytes.Buffer
	entries []zipEntry
}

func newZipWriter() *zipWriter { return &zipWriter{} }

func (w *zipWriter) writeUint16(v uint16) {
	w.buf.WriteByte(byte(v))
	w.buf.WriteByte(byte(v >> 8))
}

func (w *zipWriter) writeUint32(v uint32) {
	w.buf.WriteByte(byte(v))
	w.buf.WriteByte(byte(v >> 8))
	w.buf.WriteByte(byte(v >> 16))
	w.buf.WriteByte(byte(v >> 24))
}

// add emite el Local File Header seguido del nombre y el payload crudo.
// El offset de la entrada se registra antes de escribir su cabecera.
func (w *zipWriter) add(name string, data []byte) {
	e := zipEntry{
		name:   name,
		data:   data,
		crc:    crc32Sum(data),
		offset: uint32(w.buf.Len()),
	}

	w.writeUint32(zipLocalHeaderSig)
	w.writeUint16(zipVersionNeeded)
	w.writeUint16(0) // flags
	w.writeUint16(zipMethodStored)
	w.writeUint16(0) // mod time
	w.writeUint16(0) // mod date
	w.writeUint32(e.crc)
	w.writeUint32(uint32(len(data))) // compressed size == uncompressed (stored)
	w.writeUint32(uint32(len(data)))
	w.writeUint16(uint16(len(name)))
	w.writeUint16(0) // extra length
	w.buf.WriteString(name)
	w.buf.Write(data)

	w.entries = append(w.entries, e)
}

// finish emite el directorio central y el End Of Central Directory Record y
// devuelve el archivo completo. Invariante: el offset del directorio central
// es exactamente la suma de cabeceras locales + payloads ya escritos.
func (w *zipWriter) finish() []byte {
	centralDirOffset := uint32(w.buf.Len())

	for _, e := range w.entries {
		w.writeUint32(zipCentralDirSig)
		w.writeUint16(zipVersionNeeded) // version made by
		w.writeUint16(zipVersionNeeded) // version needed
		w.writeUint16(0)                // flags
		w.writeUint16(zipMethodStored)
		w.writeUint16(0) // mod time
		w.writeUint16(0) // mod date
		w.writeUint32(e.crc)
		w.writeUint32(uint32(len(e.data)))
		w.writeUint32(uint32(len(e.data)))
		w.writeUint16(uint16(len(e.name)))
		w.writeUint16(0) // extra length
		w.writeUint16(0) // comment length
		w.writeUint16(0) // disk number start
		w.writeUint16(0) // internal attributes
		w.writeUint32(0) // external attributes
		w.writeUint32(e.offset)
		w.buf.WriteString(e.name)
	}

	centralDirSize := uint32(w.buf.Len()) - centralDirOffset

	w.writeUint32(zipEndOfCentralSig)
	w.writeUint16(0) // this disk
	w.writeUint16(0) // disk with central dir
	w.writeUint16(uint16(len(w.entries))) // entries on this disk
	w.writeUint16(uint16(len(w.entries))) // entries total
	w.writeUint32(centralDirSize)
	w.writeUint32(centralDirOffset)
	w.writeUint16(0) // comment length

	return w.buf.Bytes()
}
