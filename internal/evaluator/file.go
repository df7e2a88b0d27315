package evaluator

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/nickingravallo/TurboFire/internal/fileutil"
)

// handranks.dat layout, little-endian:
//
//	offset 0   int32  magic "HRNK"
//	offset 4   int32  version
//	offset 8   int32  bitmask table size (8192)
//	offset 12  int32  product entry count
//	then flush table and unique5 table as int16s, then the product entries
//	as tightly packed (int32 product, int16 rank) pairs sorted ascending.
const (
	fileMagic   = 0x48524E4B
	fileVersion = 3
)

// Save writes the five-card tables to path atomically.
func (t *FiveCardTables) Save(path string) error {
	var buf bytes.Buffer
	header := [4]int32{fileMagic, fileVersion, flushMapSize, int32(len(t.Products))}
	for _, v := range header {
		binary.Write(&buf, binary.LittleEndian, v)
	}
	binary.Write(&buf, binary.LittleEndian, t.FlushTable[:])
	binary.Write(&buf, binary.LittleEndian, t.Unique5Table[:])
	for _, p := range t.Products {
		binary.Write(&buf, binary.LittleEndian, p.Product)
		binary.Write(&buf, binary.LittleEndian, p.Rank)
	}

	if err := fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LoadFiveCardTables reads tables previously written by Save, rejecting
// unknown magics and versions.
func LoadFiveCardTables(path string) (*FiveCardTables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(data)

	var header [4]int32
	for i := range header {
		if err := binary.Read(r, binary.LittleEndian, &header[i]); err != nil {
			return nil, fmt.Errorf("read %s header: %w", path, err)
		}
	}
	if header[0] != fileMagic {
		return nil, fmt.Errorf("%s: bad magic 0x%08X", path, uint32(header[0]))
	}
	if header[1] != fileVersion {
		return nil, fmt.Errorf("%s: unsupported version %d", path, header[1])
	}
	if header[2] != flushMapSize {
		return nil, fmt.Errorf("%s: bitmask size %d, want %d", path, header[2], flushMapSize)
	}
	numProducts := int(header[3])
	if numProducts < 0 || numProducts > distinctHandTypes {
		return nil, fmt.Errorf("%s: implausible product count %d", path, numProducts)
	}

	t := &FiveCardTables{}
	if err := binary.Read(r, binary.LittleEndian, t.FlushTable[:]); err != nil {
		return nil, fmt.Errorf("read %s flush table: %w", path, err)
	}
	if err := binary.Read(r, binary.LittleEndian, t.Unique5Table[:]); err != nil {
		return nil, fmt.Errorf("read %s unique5 table: %w", path, err)
	}
	t.Products = make([]ProductEntry, numProducts)
	for i := range t.Products {
		if err := binary.Read(r, binary.LittleEndian, &t.Products[i].Product); err != nil {
			return nil, fmt.Errorf("read %s product %d: %w", path, i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &t.Products[i].Rank); err != nil {
			return nil, fmt.Errorf("read %s product %d: %w", path, i, err)
		}
	}

	if err := t.Verify(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
