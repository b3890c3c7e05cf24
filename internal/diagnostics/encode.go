package diagnostics

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Report is the machine-readable form of a compilation unit's diagnostics.
type Report struct {
	Unit        string   `json:"unit" cbor:"1,keyasint"`
	Diagnostics []Record `json:"diagnostics" cbor:"2,keyasint"`
}

// Record is one encoded diagnostic.
type Record struct {
	Code      string          `json:"code" cbor:"1,keyasint"`
	Kind      string          `json:"kind" cbor:"2,keyasint"`
	Severity  string          `json:"severity" cbor:"3,keyasint"`
	Summary   string          `json:"summary" cbor:"4,keyasint"`
	Extra     string          `json:"extra,omitempty" cbor:"5,keyasint,omitempty"`
	Variant   string          `json:"variant,omitempty" cbor:"6,keyasint,omitempty"`
	File      string          `json:"file" cbor:"7,keyasint"`
	Line      int             `json:"line" cbor:"8,keyasint"`
	Column    int             `json:"column" cbor:"9,keyasint"`
	EndLine   int             `json:"endLine" cbor:"10,keyasint"`
	EndColumn int             `json:"endColumn" cbor:"11,keyasint"`
	Chain     []string        `json:"chain,omitempty" cbor:"12,keyasint,omitempty"`
	Related   []RelatedRecord `json:"related,omitempty" cbor:"13,keyasint,omitempty"`
}

type RelatedRecord struct {
	Name   string `json:"name" cbor:"1,keyasint"`
	File   string `json:"file" cbor:"2,keyasint"`
	Line   int    `json:"line" cbor:"3,keyasint"`
	Column int    `json:"column" cbor:"4,keyasint"`
}

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("diagnostics: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// NewReport converts diagnostics into their encodable form.
func NewReport(unit string, diags []*Diagnostic) *Report {
	r := &Report{Unit: unit, Diagnostics: make([]Record, 0, len(diags))}
	for _, d := range diags {
		rec := Record{
			Code:      string(d.Kind.Code()),
			Kind:      d.Kind.String(),
			Severity:  d.Severity.String(),
			Summary:   d.Summary,
			Extra:     d.Extra,
			Variant:   d.Variant.String(),
			File:      d.Window.Start.File,
			Line:      d.Window.Start.Line,
			Column:    d.Window.Start.Column,
			EndLine:   d.Window.End.Line,
			EndColumn: d.Window.End.Column,
			Chain:     d.Chain,
		}
		for _, rel := range d.Related {
			rec.Related = append(rec.Related, RelatedRecord{
				Name:   rel.Name,
				File:   rel.Window.Start.File,
				Line:   rel.Window.Start.Line,
				Column: rel.Window.Start.Column,
			})
		}
		r.Diagnostics = append(r.Diagnostics, rec)
	}
	return r
}

// EncodeJSON serializes a report as indented JSON.
func EncodeJSON(r *Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// EncodeCBOR serializes a report as canonical CBOR.
func EncodeCBOR(r *Report) ([]byte, error) {
	return cborEncMode.Marshal(r)
}

// DecodeCBOR deserializes a report produced by EncodeCBOR.
func DecodeCBOR(data []byte) (*Report, error) {
	var r Report
	if err := cbor.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("diagnostics: unmarshal report: %w", err)
	}
	return &r, nil
}
