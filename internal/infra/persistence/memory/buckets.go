package memory

import (
	"encoding/json"
	"fmt"
)

// Bucket names used by the durable stores, one per snapshot collection.
const (
	BucketClients     = "clientes"
	BucketBoxes       = "caixas"
	BucketSwitches    = "switches"
	BucketCircuits    = "circuitos"
	BucketTechnicians = "tecnicos"
	BucketTickets     = "chamados"
)

// Buckets lists every snapshot bucket in persistence order.
var Buckets = []string{BucketClients, BucketBoxes, BucketSwitches, BucketCircuits, BucketTechnicians, BucketTickets}

func (s *Snapshot) bucketTarget(bucket string) (any, bool) {
	switch bucket {
	case BucketClients:
		return &s.Clients, true
	case BucketBoxes:
		return &s.Boxes, true
	case BucketSwitches:
		return &s.Switches, true
	case BucketCircuits:
		return &s.Circuits, true
	case BucketTechnicians:
		return &s.Technicians, true
	case BucketTickets:
		return &s.Tickets, true
	}
	return nil, false
}

// EncodeBucket marshals the collection stored under bucket.
func (s Snapshot) EncodeBucket(bucket string) ([]byte, error) {
	target, ok := s.bucketTarget(bucket)
	if !ok {
		return nil, fmt.Errorf("unknown bucket %q", bucket)
	}
	return json.Marshal(target)
}

// DecodeBucket unmarshals payload into the collection stored under bucket.
// Unknown buckets are ignored so older databases keep loading.
func (s *Snapshot) DecodeBucket(bucket string, payload []byte) error {
	target, ok := s.bucketTarget(bucket)
	if !ok || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("decode %s: %w", bucket, err)
	}
	return nil
}
