package trie

// ByteClasses maps each byte value to its equivalence class.
//
// Two bytes share a class when no state of the automaton distinguishes them.
// Every byte that labels a trie edge ends up alone in its class, and each run
// of bytes between two edge labels collapses into one class. Dense transition
// tables then need one column per class instead of 256.
//
// Example for patterns ["he", "she"]:
//   - bytes 0x00-0x64 ('\x00' to 'd'): one class
//   - 'e', 'h', 's': one class each
//   - the runs 'f'-'g', 'i'-'r' and 't'-0xff: one class each
type ByteClasses struct {
	classes [256]byte
}

// SingletonByteClasses returns ByteClasses where each byte is its own class.
// This is equivalent to no alphabet reduction.
func SingletonByteClasses() ByteClasses {
	var bc ByteClasses
	for i := 0; i < 256; i++ {
		bc.classes[i] = byte(i)
	}
	return bc
}

// Get returns the equivalence class for b.
func (bc *ByteClasses) Get(b byte) byte {
	return bc.classes[b]
}

// AlphabetLen returns the number of equivalence classes.
// Classes are assigned in increasing byte order, so the class of 0xFF is the
// largest.
func (bc *ByteClasses) AlphabetLen() int {
	return int(bc.classes[255]) + 1
}

// ByteClassSet collects class boundaries while the trie is built.
//
// Bit i set means byte i is the last byte of its class. Marking a single byte
// b sets the boundaries at b-1 and b, isolating b in a class of its own.
type ByteClassSet struct {
	bits [4]uint64
}

// SetByte marks b as labelling a trie edge.
func (bcs *ByteClassSet) SetByte(b byte) {
	if b > 0 {
		bcs.setBit(b - 1)
	}
	bcs.setBit(b)
}

func (bcs *ByteClassSet) setBit(b byte) {
	bcs.bits[b/64] |= 1 << (b % 64)
}

func (bcs *ByteClassSet) getBit(b byte) bool {
	return bcs.bits[b/64]&(1<<(b%64)) != 0
}

// ByteClasses converts the boundary set into a lookup table by walking all
// 256 bytes and starting a new class after every boundary.
func (bcs *ByteClassSet) ByteClasses() ByteClasses {
	var bc ByteClasses
	class := byte(0)
	for b := 0; b < 256; b++ {
		bc.classes[b] = class
		// Byte 255 closes the last class; incrementing would wrap.
		if b < 255 && bcs.getBit(byte(b)) {
			class++
		}
	}
	return bc
}
