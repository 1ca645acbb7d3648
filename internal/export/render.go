package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"

	"fibernet/internal/infra/persistence/memory"
	"fibernet/pkg/domain"
)

// Artifact formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

type rendered struct {
	name        string
	format      string
	contentType string
	payload     []byte
	err         error
}

func renderSnapshot(s memory.Snapshot) rendered {
	payload, err := json.MarshalIndent(s, "", "  ")
	return rendered{name: "snapshot.json", format: FormatJSON, contentType: "application/json", payload: payload, err: err}
}

// AssignmentHeader is the column set of the assignment report.
var AssignmentHeader = []string{
	"tipo", "cliente_id", "cliente_nome",
	"elemento_id", "elemento_nome",
	"cabo", "lado", "numero_conjunto", "numero_fibra_no_conjunto", "cor_conjunto", "cor_fibra",
	"numero_porta", "vlan", "ip_cliente",
}

func renderAssignments(s memory.Snapshot) rendered {
	r := rendered{name: "assignments.csv", format: FormatCSV, contentType: "text/csv"}
	r.payload, r.err = assignmentsCSV(s)
	return r
}

// assignmentsCSV lists every fiber and port assigned to a client, boxes
// first, in store order.
func assignmentsCSV(s memory.Snapshot) ([]byte, error) {
	names := make(map[string]string, len(s.Clients))
	for _, c := range s.Clients {
		names[c.ID] = c.Name
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(AssignmentHeader); err != nil {
		return nil, err
	}
	for _, box := range s.Boxes {
		for _, cable := range box.Cables() {
			for _, f := range cable.Fibers {
				if f.ClientID == nil {
					continue
				}
				row := []string{
					string(domain.EntityFiber), *f.ClientID, names[*f.ClientID],
					box.ID, box.Code,
					cable.Identification, string(cable.Side),
					strconv.Itoa(f.GroupNumber), strconv.Itoa(f.PositionInSet), f.GroupColor, f.Color,
					"", "", "",
				}
				if err := w.Write(row); err != nil {
					return nil, err
				}
			}
		}
	}
	for _, sw := range s.Switches {
		for _, p := range sw.Ports {
			if p.ClientID == nil {
				continue
			}
			row := []string{
				string(domain.EntityPort), *p.ClientID, names[*p.ClientID],
				sw.ID, sw.Name,
				"", "", "", "", "", "",
				strconv.Itoa(p.Number), p.VLAN, p.ClientIP,
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
