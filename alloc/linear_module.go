package alloc

import "bytes"

const (
	memoryExportName = "memory"

	sectionMemory = 5
	sectionExport = 7

	limitsHasMax = 0x01
	externMemory = 0x02
)

// memoryModule encodes a core module that declares and exports one memory.
func memoryModule(minPages, maxPages uint32) []byte {
	var mem bytes.Buffer
	writeLEB128u(&mem, 1)
	mem.WriteByte(limitsHasMax)
	writeLEB128u(&mem, minPages)
	writeLEB128u(&mem, maxPages)

	var exp bytes.Buffer
	writeLEB128u(&exp, 1)
	writeLEB128u(&exp, uint32(len(memoryExportName)))
	exp.WriteString(memoryExportName)
	exp.WriteByte(externMemory)
	writeLEB128u(&exp, 0)

	var w bytes.Buffer
	w.Write([]byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00})
	writeSection(&w, sectionMemory, mem.Bytes())
	writeSection(&w, sectionExport, exp.Bytes())
	return w.Bytes()
}

func writeSection(w *bytes.Buffer, id byte, data []byte) {
	w.WriteByte(id)
	writeLEB128u(w, uint32(len(data)))
	w.Write(data)
}

func writeLEB128u(w *bytes.Buffer, v uint32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.WriteByte(b)
		if v == 0 {
			break
		}
	}
}
