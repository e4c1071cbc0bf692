package document

import (
	"github.com/HestiaEstates/listing-api/internal/models"
)

// ===============================
// Document Types
// ===============================

type Type string

const (
	TypeTitle             Type = "title"
	TypeBuildingPermit    Type = "building_permit"
	TypeTopographic       Type = "topographic"
	TypeEnergyCertificate Type = "energy_certificate"
	TypeCoverageDiagram   Type = "coverage_diagram"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// AllTypes in presentation order.
var AllTypes = []Type{
	TypeTitle,
	TypeBuildingPermit,
	TypeTopographic,
	TypeEnergyCertificate,
	TypeCoverageDiagram,
}

func ValidType(t Type) bool {
	for _, dt := range AllTypes {
		if dt == t {
			return true
		}
	}
	return false
}

func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// requiredForAll marks the types every property category needs; the rest are
// construction-related and do not apply to bare plots.
func requiredFor(t Type, pt models.PropertyType) bool {
	switch t {
	case TypeTitle, TypeTopographic:
		return true
	case TypeBuildingPermit, TypeEnergyCertificate, TypeCoverageDiagram:
		return pt != models.PropertyPlot
	}
	return false
}

// RequiredTypes returns the document set a property of the given type must
// have approved before its legal stage can complete.
func RequiredTypes(pt models.PropertyType) []Type {
	out := make([]Type, 0, len(AllTypes))
	for _, t := range AllTypes {
		if requiredFor(t, pt) {
			out = append(out, t)
		}
	}
	return out
}

// Current resolves the single current document of a type: latest UploadedAt,
// ties broken by insertion order (highest ID). Returns nil when none exist.
func Current(docs []models.Document, t Type) *models.Document {
	var cur *models.Document
	for i := range docs {
		d := &docs[i]
		if Type(d.Type) != t {
			continue
		}
		if cur == nil ||
			d.UploadedAt.After(cur.UploadedAt) ||
			(d.UploadedAt.Equal(cur.UploadedAt) && d.ID > cur.ID) {
			cur = d
		}
	}
	return cur
}

// CurrentSet resolves the current document per type over a property's full
// upload history.
func CurrentSet(docs []models.Document) map[Type]*models.Document {
	out := make(map[Type]*models.Document, len(AllTypes))
	for _, t := range AllTypes {
		if d := Current(docs, t); d != nil {
			out[t] = d
		}
	}
	return out
}

// IsComplete reports whether every required type has an approved current
// document. Uploads of non-required types are ignored.
func IsComplete(pt models.PropertyType, docs []models.Document) bool {
	for _, t := range RequiredTypes(pt) {
		cur := Current(docs, t)
		if cur == nil || cur.Status != StatusApproved {
			return false
		}
	}
	return true
}
