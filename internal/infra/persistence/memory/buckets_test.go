package memory

import (
	"strings"
	"testing"

	"fibernet/pkg/domain"
)

func TestBucketRoundTripThroughImport(t *testing.T) {
	src := Snapshot{
		Clients:  []Client{{ID: "c1", Name: "Ana"}},
		Switches: []Switch{{ID: "s1", TotalPorts: 8, Ports: domain.GeneratePorts("s1", 8, nil)}},
	}
	var dst Snapshot
	for _, bucket := range Buckets {
		data, err := src.EncodeBucket(bucket)
		if err != nil {
			t.Fatalf("encode %s: %v", bucket, err)
		}
		if err := dst.DecodeBucket(bucket, data); err != nil {
			t.Fatalf("decode %s: %v", bucket, err)
		}
	}
	store := NewStore(nil)
	store.ImportState(dst)
	out := store.ExportState()
	if len(out.Clients) != 1 || out.Clients[0].Name != "Ana" || len(out.Switches[0].Ports) != 8 {
		t.Fatalf("unexpected state after import: %+v", out)
	}
}

func TestBucketErrors(t *testing.T) {
	if _, err := (Snapshot{}).EncodeBucket("organisms"); err == nil {
		t.Fatalf("expected unknown bucket error")
	}
	var s Snapshot
	if err := s.DecodeBucket("organisms", []byte(`{}`)); err != nil {
		t.Fatalf("unknown buckets must be ignored, got %v", err)
	}
	if err := s.DecodeBucket(BucketBoxes, []byte(`{`)); err == nil || !strings.Contains(err.Error(), "decode caixas") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestImportRegeneratesMissingChildren(t *testing.T) {
	store := NewStore(nil)
	store.ImportState(Snapshot{
		Boxes: []Box{{ID: "b1", InputCables: []Cable{{ID: "c1", FiberCount: 24}}}},
		Switches: []Switch{
			{ID: "s1", TotalPorts: 8},
			{ID: "s2", TotalPorts: 10},
		},
	})
	out := store.ExportState()

	fibers := out.Boxes[0].InputCables[0].Fibers
	if len(fibers) != 24 || fibers[13].GroupNumber != 2 || fibers[0].CableID != "c1" {
		t.Fatalf("fibers not regenerated: %d", len(fibers))
	}
	ports := out.Switches[0].Ports
	if len(ports) != 8 || ports[7].Number != 8 || ports[0].SwitchID != "s1" || ports[0].ID == "" {
		t.Fatalf("ports not regenerated: %+v", ports)
	}
	if len(out.Switches[1].Ports) != 0 {
		t.Fatalf("unsupported port count must be left for the rules to report")
	}
}
