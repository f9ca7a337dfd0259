package fat32

import "testing"

func TestReadBiosParameterBlock_DerivedGeometry(t *testing.T) {
	dev := newMemoryDevice(512, 1)
	dev.putSector(0, buildEBPBSector(ebpbParams{
		bytesPerSector:    1024,
		sectorsPerCluster: 2,
		reservedSectors:   2,
		fats:              2,
		sectorsPerFat:     2,
		rootCluster:       2,
	}))

	bpb, err := ReadBiosParameterBlock(dev, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := bpb.RelativeFatStartSector(); got != 2 {
		t.Fatalf("expected fat-start-sector 2, got %d", got)
	}

	if got := bpb.RelativeDataStartSector(); got != 6 {
		t.Fatalf("expected data-start-sector 6, got %d", got)
	}

	if got := bpb.SectorSize(); got != 1024 {
		t.Fatalf("expected sector-size 1024, got %d", got)
	}

	if got := bpb.SectorsPerCluster(); got != 2 {
		t.Fatalf("expected sectors-per-cluster 2, got %d", got)
	}
}

func TestReadBiosParameterBlock_BadSignature(t *testing.T) {
	dev := newMemoryDevice(512, 1)
	raw := buildEBPBSector(ebpbParams{bytesPerSector: 512, sectorsPerCluster: 1, fats: 1, sectorsPerFat: 1})
	raw[510] = 0xaa
	raw[511] = 0x55
	dev.putSector(0, raw)

	_, err := ReadBiosParameterBlock(dev, 0)
	if err == nil {
		t.Fatalf("expected BadSignature error for the (wrong) 0xAA 0x55 order")
	}
}
